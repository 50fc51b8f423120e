package tracing

import (
	"log"

	"github.com/bobbthebuilder/goodies/instrumentation/hooking"
)

// LogHook writes one line per hook event to a logger.
type LogHook struct {
	*log.Logger
}

// NewLogHook creates a LogHook that writes to logger.
func NewLogHook(logger *log.Logger) *LogHook {
	return &LogHook{Logger: logger}
}

// Func logs the event.
func (h *LogHook) Func(ctx hooking.HookCtx) {
	if ctx.Detail == nil {
		h.Printf("%s %s item=%v", ctx.DomainName(), ctx.Pos.Name, ctx.Item)
		return
	}

	h.Printf("%s %s item=%v detail=%+v",
		ctx.DomainName(), ctx.Pos.Name, ctx.Item, ctx.Detail)
}
