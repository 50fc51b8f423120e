package fixedarray

import (
	"bytes"
	"fmt"
	"io"
	"iter"

	"github.com/bobbthebuilder/goodies/instrumentation/hooking"
	"github.com/bobbthebuilder/goodies/naming"
)

// HookPosAppend marks when a value is stored into a slot.
var HookPosAppend = &hooking.HookPos{Name: "Array Append"}

// HookPosDrop marks when a value is discarded because the array is full.
var HookPosDrop = &hooking.HookPos{Name: "Array Drop"}

// HookPosRemoveLast marks when the last live element becomes stale.
var HookPosRemoveLast = &hooking.HookPos{Name: "Array Remove Last"}

// SlotDetail is the hook detail of append and remove-last events.
type SlotDetail struct {
	Index int
}

// Array is a sequence of at most Capacity() elements backed by a storage
// block that is allocated once.
type Array[T any] struct {
	hooking.HookableBase

	name    string
	storage []T
	length  int
}

// New creates an empty array with room for capacity elements.
func New[T any](name string, capacity int) *Array[T] {
	if capacity < 0 {
		panic(fmt.Sprintf("array %s: negative capacity %d", name, capacity))
	}

	return Wrap(name, make([]T, capacity))
}

// Wrap creates an empty array that stores its elements in storage. The
// capacity is len(storage). Whatever storage holds is treated as stale. The
// caller must not use storage directly while the array is in use.
func Wrap[T any](name string, storage []T) *Array[T] {
	naming.MustBeValid(name)

	return &Array[T]{
		name:    name,
		storage: storage[:len(storage):len(storage)],
	}
}

// Name returns the name of the array.
func (a *Array[T]) Name() string {
	return a.name
}

// Capacity returns the maximum number of live elements.
func (a *Array[T]) Capacity() int {
	return len(a.storage)
}

// Len returns the number of live elements.
func (a *Array[T]) Len() int {
	return a.length
}

// CanAppend checks if the array has a free slot.
func (a *Array[T]) CanAppend() bool {
	return a.length < len(a.storage)
}

// Append stores v after the last live element. If the array is full, v is
// discarded.
func (a *Array[T]) Append(v T) {
	a.TryAppend(v)
}

// TryAppend stores v like Append and reports whether it was kept.
func (a *Array[T]) TryAppend(v T) bool {
	if a.length == len(a.storage) {
		if a.NumHooks() > 0 {
			a.invoke(HookPosDrop, v, nil)
		}

		return false
	}

	a.storage[a.length] = v
	a.length++

	if a.NumHooks() > 0 {
		a.invoke(HookPosAppend, v, SlotDetail{Index: a.length - 1})
	}

	return true
}

// AppendFunc lets fill build the next element in place. The slot passed to
// fill still holds its stale value, if any. On a full array fill is not
// called and false is returned.
func (a *Array[T]) AppendFunc(fill func(slot *T)) bool {
	if a.length == len(a.storage) {
		if a.NumHooks() > 0 {
			a.invoke(HookPosDrop, nil, nil)
		}

		return false
	}

	fill(&a.storage[a.length])
	a.length++

	if a.NumHooks() > 0 {
		i := a.length - 1
		a.invoke(HookPosAppend, a.storage[i], SlotDetail{Index: i})
	}

	return true
}

// AppendMany appends the values in order. Values that do not fit are
// dropped one by one.
func (a *Array[T]) AppendMany(vs ...T) {
	for _, v := range vs {
		a.TryAppend(v)
	}
}

// RemoveLast shortens the live range by one. The removed value stays in
// storage. It does nothing on an empty array.
func (a *Array[T]) RemoveLast() {
	if a.length == 0 {
		return
	}

	a.length--

	if a.NumHooks() > 0 {
		a.invoke(HookPosRemoveLast, a.storage[a.length], SlotDetail{Index: a.length})
	}
}

// At returns the live element at index i.
func (a *Array[T]) At(i int) (T, bool) {
	if i < 0 || i >= a.length {
		var zero T
		return zero, false
	}

	return a.storage[i], true
}

// Last returns the last live element.
func (a *Array[T]) Last() (T, bool) {
	return a.At(a.length - 1)
}

// All yields the live elements in insertion order. The sequence reads the
// storage directly and stops at the length current when iteration starts.
// Appending or removing during an iteration is not supported.
func (a *Array[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		live := a.storage[:a.length]
		for _, v := range live {
			if !yield(v) {
				return
			}
		}
	}
}

// Live returns the live elements as a slice sharing the array's storage.
// Its capacity equals its length, so appending to it reallocates rather
// than overwriting stale slots. It is invalidated by any later mutation.
func (a *Array[T]) Live() []T {
	return a.storage[:a.length:a.length]
}

// WriteTo writes each live element followed by a single space.
func (a *Array[T]) WriteTo(w io.Writer) (int64, error) {
	var total int64

	for _, v := range a.storage[:a.length] {
		n, err := fmt.Fprint(w, v, " ")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}

	return total, nil
}

// String renders the live elements the same way as WriteTo.
func (a *Array[T]) String() string {
	var buf bytes.Buffer

	_, _ = a.WriteTo(&buf)

	return buf.String()
}

func (a *Array[T]) invoke(pos *hooking.HookPos, item, detail any) {
	a.InvokeHook(hooking.HookCtx{
		Domain: a,
		Pos:    pos,
		Item:   item,
		Detail: detail,
	})
}
