// Package tracing provides ready-made hooks that observe hookable
// containers: a per-position counter and a logger.
package tracing
