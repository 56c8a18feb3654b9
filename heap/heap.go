package heap

import "fmt"

import "github.com/bnclabs/golog"
import s "github.com/bnclabs/gosettings"
import humanize "github.com/dustin/go-humanize"

import "github.com/bnclabs/goheap/api"
import "github.com/bnclabs/goheap/mem"

// Heap manages a single growable arena as a chain of boundary-tagged
// blocks, with an explicit free list over the free ones. Heap
// implements api.Mallocer{}. Instances are not thread safe.
type Heap struct {
	// 64-bit aligned stats
	n_mallocs   int64
	n_frees     int64
	n_reallocs  int64
	n_callocs   int64
	n_extends   int64
	n_splits    int64
	n_coalesces int64
	mallocated  int64 // block bytes currently handed out

	arena api.Memory
	buf   []byte
	listp int64 // prologue payload offset
	freep int64 // free-list head, 0 when empty

	// settings
	capacity   int64
	chunksize  int64
	debugcheck bool
	setts      s.Settings
	logprefix  string
}

// NewHeap create a heap over a fresh arena of upto capacity bytes and
// grow it by one chunk.
func NewHeap(capacity int64, setts s.Settings) (*Heap, error) {
	if capacity <= 0 || capacity > Maxcapacity {
		panicerr("capacity %v out of range (0, %v]", capacity, Maxcapacity)
	}
	h, err := NewHeapOver(mem.NewArena(capacity), capacity, setts)
	if err != nil {
		return nil, err
	}
	log.Infof("%v started with capacity %v, chunksize %v\n",
		h.logprefix, humanize.Bytes(uint64(capacity)),
		humanize.Bytes(uint64(h.chunksize)))
	return h, nil
}

// NewHeapOver like NewHeap but over a caller supplied provider, for
// harnesses that reuse one arena across heaps. The provider must be
// rewound, its high-water mark at zero. The bootstrap region holds an
// alignment padding word, a prologue block of Minblock bytes marked
// allocated and a zero-sized allocated epilogue word, so boundary-tag
// lookups never run off either end of the arena.
func NewHeapOver(
	arena api.Memory, capacity int64, setts s.Settings) (*Heap, error) {

	if capacity <= 0 || capacity > Maxcapacity {
		panicerr("capacity %v out of range (0, %v]", capacity, Maxcapacity)
	}
	h := &Heap{capacity: capacity, logprefix: "HEAP"}
	setts = make(s.Settings).Mixin(Defaultsettings(), setts)
	h.chunksize = align(setts.Int64("chunksize"))
	if h.chunksize < Minblock {
		h.chunksize = Minblock
	}
	h.debugcheck = setts.Bool("debug.check")
	h.setts = setts
	h.arena, h.buf = arena, arena.Bytes()

	base, err := h.arena.Sbrk(4 * dsize)
	if err != nil {
		return nil, err
	} else if base != 0 {
		panicerr("expected a rewound arena, base at %v", base)
	}
	putword(h.buf, 0, 0)                           // alignment padding
	putword(h.buf, wsize, pack(Minblock, true))    // prologue header
	putlink(h.buf, dsize, 0)                       // prologue prevfree
	putlink(h.buf, 2*dsize, 0)                     // prologue nextfree
	putword(h.buf, Minblock, pack(Minblock, true)) // prologue footer
	putword(h.buf, Minblock+wsize, pack(0, true))  // epilogue header
	h.listp, h.freep = dsize, 0

	if _, err := h.extend(h.chunksize); err != nil {
		return nil, err
	}
	return h, nil
}

//---- operations

// Malloc implement api.Mallocer{} interface. First-fit over the free
// list, growing the arena by max(asize, chunksize) when nothing fits.
// Returns zero on zero-sized requests, on requests no heap can encode
// and on provider exhaustion, existing blocks are untouched either
// way.
func (h *Heap) Malloc(n int64) int64 {
	if n <= 0 || n > Maxcapacity {
		return 0
	}
	asize := adjustsize(n)

	if bp := h.firstfit(asize); bp != 0 {
		h.place(bp, asize)
		h.n_mallocs++
		return bp
	}

	extendsize := asize
	if extendsize < h.chunksize {
		extendsize = h.chunksize
	}
	bp, err := h.extend(extendsize)
	if err != nil {
		return 0
	}
	h.place(bp, asize)
	h.n_mallocs++
	return bp
}

// Free implement api.Mallocer{} interface. Rewrites the block's tags
// free, coalesces with physical neighbours and heads the free list
// with the result. Freeing offset zero is a no-op, freeing an already
// free or foreign offset is out of contract and only the consistency
// checker will notice.
func (h *Heap) Free(off int64) {
	if off == 0 {
		return
	}
	size := h.blocksize(off)
	putword(h.buf, h.hdr(off), pack(size, false))
	putword(h.buf, off+size-dsize, pack(size, false))
	h.mallocated -= size

	bp := h.coalesce(off)
	h.insertfree(bp)
	h.n_frees++

	if h.debugcheck {
		h.Validate()
	}
}

// Realloc implement api.Mallocer{} interface. Semantics:
//   - n == 0 frees the block and returns zero.
//   - off == 0 behaves as Malloc(n).
//   - matching adjusted sizes return off unchanged.
//   - otherwise allocate fresh, copy min(n, old payload) bytes and
//     free the old block. If the fresh allocation fails the old block
//     is left completely untouched and zero is returned.
//
// No in-place growth into a free neighbour is attempted.
func (h *Heap) Realloc(off, n int64) int64 {
	if n <= 0 {
		h.Free(off)
		return 0
	} else if n > Maxcapacity {
		return 0
	} else if off == 0 {
		return h.Malloc(n)
	}
	h.n_reallocs++

	oldsize := h.blocksize(off)
	if oldsize == adjustsize(n) {
		return off
	}

	newoff := h.Malloc(n)
	if newoff == 0 {
		return 0
	}
	copyn := oldsize - dsize // old payload bytes
	if n < copyn {
		copyn = n
	}
	copy(h.buf[newoff:newoff+copyn], h.buf[off:off+copyn])
	h.Free(off)
	return newoff
}

// Calloc implement api.Mallocer{} interface. Allocate count*esize
// bytes and zero the payload. An overflowing product fails the call,
// it does not wrap.
func (h *Heap) Calloc(count, esize int64) int64 {
	if count <= 0 || esize <= 0 {
		return 0
	} else if count > (Maxcapacity / esize) {
		return 0
	}
	n := count * esize
	off := h.Malloc(n)
	if off == 0 {
		return 0
	}
	payload := h.buf[off : off+n]
	for i := range payload {
		payload[i] = 0
	}
	h.n_callocs++
	return off
}

// Blocksize usable payload bytes of the allocated block at off. Can
// exceed the originally requested size due to alignment and minimum
// block rounding.
func (h *Heap) Blocksize(off int64) int64 {
	return h.blocksize(off) - dsize
}

// Blockbytes writable view over the payload of the allocated block at
// off, valid until the block is freed or resized.
func (h *Heap) Blockbytes(off int64) []byte {
	return h.buf[off : off+h.Blocksize(off)]
}

//---- local functions

// extend grow the arena by n bytes, rounded up to Alignment so the
// header/footer pairing survives. The old epilogue word becomes the
// new block's header, a fresh epilogue is written at the new arena
// end and the block is coalesced backward and put on the free list.
func (h *Heap) extend(n int64) (int64, error) {
	size := align(n)
	bp, err := h.arena.Sbrk(size)
	if err != nil {
		return 0, err
	}
	h.n_extends++

	putword(h.buf, h.hdr(bp), pack(size, false)) // over old epilogue
	putword(h.buf, bp+size-dsize, pack(size, false))
	putword(h.buf, bp+size-wsize, pack(0, true)) // new epilogue

	bp = h.coalesce(bp)
	h.insertfree(bp)

	if h.debugcheck {
		h.Validate()
	}
	return bp, nil
}

// place carve an allocated block of asize bytes out of the free block
// bp. Splits when the remainder can hold a minimum block, the
// remainder is coalesced, in case the split just exposed a free
// successor, and reinserted. Small remainders ride along with the
// allocation rather than become fragments too small for link fields.
func (h *Heap) place(bp, asize int64) {
	csize := h.blocksize(bp)

	if csize-asize >= Minblock { // split
		putword(h.buf, h.hdr(bp), pack(asize, true))
		putword(h.buf, bp+asize-dsize, pack(asize, true))
		h.removefree(bp)
		h.mallocated += asize
		h.n_splits++

		rbp := bp + asize
		putword(h.buf, h.hdr(rbp), pack(csize-asize, false))
		putword(h.buf, rbp+(csize-asize)-dsize, pack(csize-asize, false))
		rbp = h.coalesce(rbp)
		h.insertfree(rbp)

	} else {
		putword(h.buf, h.hdr(bp), pack(csize, true))
		putword(h.buf, bp+csize-dsize, pack(csize, true))
		h.removefree(bp)
		h.mallocated += csize
	}
}

func (h *Heap) String() string {
	capacity, heapsz, alloc, overhead := h.Info()
	return fmt.Sprintf(
		"heap{capacity:%v heap:%v alloc:%v overhead:%v}",
		capacity, heapsz, alloc, overhead)
}
