package datarecording

import (
	"fmt"
	"log"

	"github.com/rs/xid"

	"github.com/bobbthebuilder/goodies/fixedarray"
	"github.com/bobbthebuilder/goodies/instrumentation/hooking"
)

// OpTable is the table that RecordingHook writes to.
const OpTable = "array_ops"

// OpEntry is one recorded array operation.
type OpEntry struct {
	Run    string
	Seq    int64
	Array  string
	Op     string
	Slot   int
	Item   string
	Length int
}

type lengther interface {
	Len() int
}

// RecordingHook records every hook event it sees as an OpEntry. All
// entries written by one hook share a Run ID.
type RecordingHook struct {
	recorder DataRecorder
	run      string
	seq      int64
}

// NewRecordingHook creates the op table on recorder and returns a hook
// writing to it.
func NewRecordingHook(recorder DataRecorder) *RecordingHook {
	recorder.CreateTable(OpTable, OpEntry{})

	return &RecordingHook{
		recorder: recorder,
		run:      xid.New().String(),
	}
}

// Run returns the ID shared by the entries of this hook.
func (h *RecordingHook) Run() string {
	return h.run
}

// Func records the event.
func (h *RecordingHook) Func(ctx hooking.HookCtx) {
	entry := OpEntry{
		Run:   h.run,
		Seq:   h.seq,
		Array: ctx.DomainName(),
		Op:    ctx.Pos.Name,
		Slot:  -1,
	}
	h.seq++

	if slot, ok := ctx.Detail.(fixedarray.SlotDetail); ok {
		entry.Slot = slot.Index
	}

	if ctx.Item != nil {
		entry.Item = fmt.Sprint(ctx.Item)
	}

	if l, ok := ctx.Domain.(lengther); ok {
		entry.Length = l.Len()
	}

	if err := h.recorder.InsertData(OpTable, entry); err != nil {
		log.Printf("recording %s: %v", entry.Op, err)
	}
}
