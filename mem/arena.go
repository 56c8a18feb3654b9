// Package mem supplies memory-arena providers for the heap allocator.
// Providers hand out raw bytes from a single contiguous region through
// an sbrk style primitive and never reclaim them, reclamation is the
// allocator's business. Types and functions in this package are not
// thread safe.
package mem

import "github.com/bnclabs/goheap/api"

// Arena implements api.Memory over a fixed pre-allocated buffer with a
// high-water mark. The full capacity is reserved up front, Sbrk only
// advances the mark, hence pointers into Bytes() remain stable for the
// arena's lifetime.
type Arena struct {
	buf      []byte
	hi       int64
	capacity int64
	n_sbrks  int64
}

// NewArena create a provider with upto capacity growable bytes.
func NewArena(capacity int64) *Arena {
	if capacity <= 0 {
		panic("mem.NewArena(): capacity should be positive")
	}
	return &Arena{buf: make([]byte, capacity), capacity: capacity}
}

// Sbrk implement api.Memory{} interface.
func (arena *Arena) Sbrk(n int64) (int64, error) {
	if n < 0 {
		panic("mem.Sbrk(): negative increment")
	} else if arena.hi+n > arena.capacity {
		return 0, api.ErrorOutofMemory
	}
	old := arena.hi
	arena.hi += n
	arena.n_sbrks++
	return old, nil
}

// Lo implement api.Memory{} interface.
func (arena *Arena) Lo() int64 {
	return 0
}

// Hi implement api.Memory{} interface.
func (arena *Arena) Hi() int64 {
	return arena.hi
}

// Size implement api.Memory{} interface.
func (arena *Arena) Size() int64 {
	return arena.hi
}

// Bytes implement api.Memory{} interface.
func (arena *Arena) Bytes() []byte {
	return arena.buf
}

// Capacity upper bound for this arena, Sbrk fails beyond this.
func (arena *Arena) Capacity() int64 {
	return arena.capacity
}

// Sbrks number of times the arena was grown.
func (arena *Arena) Sbrks() int64 {
	return arena.n_sbrks
}

// Reset rewind the high-water mark to zero, for harnesses that replay
// several traces over one arena. Outstanding offsets become garbage.
func (arena *Arena) Reset() {
	arena.hi, arena.n_sbrks = 0, 0
}
