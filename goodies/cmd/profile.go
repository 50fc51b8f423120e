package cmd

import (
	"bytes"
	"errors"
	"runtime"
	"runtime/pprof"

	"github.com/google/pprof/profile"
)

// measureHeapAlloc reports the bytes allocated on the heap while f runs.
// It samples every allocation for the duration of the call.
func measureHeapAlloc(f func()) (int64, error) {
	rate := runtime.MemProfileRate
	runtime.MemProfileRate = 1
	defer func() { runtime.MemProfileRate = rate }()

	before, err := allocatedBytes()
	if err != nil {
		return 0, err
	}

	f()

	after, err := allocatedBytes()
	if err != nil {
		return 0, err
	}

	return after - before, nil
}

// allocatedBytes returns the alloc_space total of the current heap profile.
func allocatedBytes() (int64, error) {
	// The heap profile only reflects allocations up to the last GC.
	runtime.GC()

	buf := bytes.NewBuffer(nil)
	if err := pprof.Lookup("allocs").WriteTo(buf, 0); err != nil {
		return 0, err
	}

	prof, err := profile.ParseData(buf.Bytes())
	if err != nil {
		return 0, err
	}

	idx := -1
	for i, st := range prof.SampleType {
		if st.Type == "alloc_space" {
			idx = i
			break
		}
	}

	if idx < 0 {
		return 0, errors.New("heap profile has no alloc_space samples")
	}

	var total int64
	for _, s := range prof.Sample {
		total += s.Value[idx]
	}

	return total, nil
}
