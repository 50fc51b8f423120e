package tracing

import (
	"sync"

	"github.com/bobbthebuilder/goodies/instrumentation/hooking"
)

// OpCounter is a hook that counts how often each hook position fires.
// One counter can be shared by several domains.
type OpCounter struct {
	lock     sync.Mutex
	posNames []string
	count    map[string]uint64
}

// NewOpCounter creates a new OpCounter.
func NewOpCounter() *OpCounter {
	return &OpCounter{
		count: make(map[string]uint64),
	}
}

// Func counts the position of ctx.
func (c *OpCounter) Func(ctx hooking.HookCtx) {
	c.lock.Lock()
	defer c.lock.Unlock()

	name := ctx.Pos.Name
	if _, ok := c.count[name]; !ok {
		c.posNames = append(c.posNames, name)
	}

	c.count[name]++
}

// PosNames returns the names of all positions seen, in first-seen order.
func (c *OpCounter) PosNames() []string {
	c.lock.Lock()
	defer c.lock.Unlock()

	return append([]string(nil), c.posNames...)
}

// Count returns how many times the position fired.
func (c *OpCounter) Count(pos *hooking.HookPos) uint64 {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.count[pos.Name]
}
