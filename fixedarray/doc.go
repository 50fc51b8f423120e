// Package fixedarray provides Array, a sequence whose storage is allocated
// once for a fixed number of elements and never reallocated.
//
// An Array tracks a logical length separate from its capacity. Appending
// past capacity silently drops the value, and removing from an empty array
// does nothing, so every operation is total. Callers that need to know
// whether a value was kept check CanAppend first or use TryAppend.
//
// Removing the last element only shortens the live range. The vacated slot
// keeps its value until a later append overwrites it.
//
// Storage can be provided by the caller, which lets a small array live in
// the caller's stack frame:
//
//	var backing [5]int
//	arr := fixedarray.Wrap("Demo", backing[:])
//	arr.AppendMany(10, 10, 3, 2, 19, 44)
//	fmt.Println(arr) // 10 10 3 2 19
//
// Arrays are not safe for concurrent use.
package fixedarray
