package api

import "errors"

// ErrorOutofMemory arena provider cannot grow any further, allocation
// requests that need fresh memory shall fail.
var ErrorOutofMemory = errors.New("heap.outofmemory")

// Mallocer interface for custom memory management. Offsets returned by
// Mallocer index into the provider's byte region, offset zero is the
// null pointer.
type Mallocer interface {
	// Malloc allocate a chunk of `n` bytes from the heap. Allocated
	// offsets are always 8-byte aligned. Returns zero when the request
	// cannot be satisfied.
	Malloc(n int64) int64

	// Free a chunk allocated by Malloc, Realloc or Calloc. Freeing
	// offset zero is a no-op.
	Free(off int64)

	// Realloc resize the chunk at off to n bytes. Contents are
	// preserved upto the smaller of the old and new payload. If the
	// heap cannot satisfy the request the old chunk is left untouched
	// and zero is returned.
	Realloc(off, n int64) int64

	// Calloc allocate count*esize bytes and zero the payload. Returns
	// zero if the product overflows or memory is exhausted.
	Calloc(count, esize int64) int64

	// Info of memory accounting for this heap.
	Info() (capacity, heap, alloc, overhead int64)
}
