package heap

import "fmt"

// Check walk the heap read-only and report every violated invariant,
// an empty slice means the heap is consistent. Meant for tests,
// debugging and post-mortems. Mutating operations never call this on
// their own unless "debug.check" is set.
//
// Verified, in order: the bootstrap layout, prologue and epilogue
// sentinels, free-list head and link symmetry, free blocks within
// arena bounds, header/footer agreement and size conformance for
// every block, no two physically adjacent free blocks, and that the
// free list covers exactly the set of free blocks.
func (h *Heap) Check() []error {
	errs := make([]error, 0)
	lo, hi := h.arena.Lo(), h.arena.Hi()

	// heap start
	if lo+dsize != h.listp {
		errs = append(errs,
			fmt.Errorf("heap start %v, expected %v", h.listp, lo+dsize))
		return errs // arithmetic below keys off listp
	}

	// prologue sentinel
	hw := getword(h.buf, h.hdr(h.listp))
	fw := getword(h.buf, h.listp+Minblock-dsize)
	if unpacksize(hw) != Minblock || unpacksize(fw) != Minblock {
		errs = append(errs, fmt.Errorf(
			"prologue size {%v,%v}, expected %v",
			unpacksize(hw), unpacksize(fw), Minblock))
	}
	if !unpackalloc(hw) || !unpackalloc(fw) {
		errs = append(errs, fmt.Errorf("prologue not marked allocated"))
	}

	// epilogue sentinel
	ew := getword(h.buf, hi-wsize)
	if unpacksize(ew) != 0 {
		errs = append(errs, fmt.Errorf(
			"epilogue size %v, expected 0", unpacksize(ew)))
	}
	if !unpackalloc(ew) {
		errs = append(errs, fmt.Errorf("epilogue not marked allocated"))
	}

	// free-list head
	if h.freep != 0 && h.prevfree(h.freep) != 0 {
		errs = append(errs, fmt.Errorf(
			"free head %v has prevfree %v", h.freep, h.prevfree(h.freep)))
	}

	// free-list traversal
	nfree := int64(0)
	for bp := h.freep; bp != 0; bp = h.nextfree(bp) {
		if bp < lo || bp >= hi {
			errs = append(errs, fmt.Errorf(
				"free block %v outside arena [%v,%v)", bp, lo, hi))
			break
		}
		if next := h.nextfree(bp); next != 0 && h.prevfree(next) != bp {
			errs = append(errs, fmt.Errorf(
				"free links asymmetric at %v, next %v prevfree %v",
				bp, next, h.prevfree(next)))
			break
		}
		if h.isallocated(bp) {
			errs = append(errs, fmt.Errorf(
				"free list holds allocated block %v", bp))
		}
		if nfree++; nfree > hi/Minblock {
			errs = append(errs, fmt.Errorf("free list does not terminate"))
			break
		}
	}

	// full block chain, prologue to epilogue
	nfreeblocks, prevalloc := int64(0), true
	for bp := h.listp; h.blocksize(bp) > 0; bp = h.nextblk(bp) {
		size, alloc := h.blocksize(bp), h.isallocated(bp)
		if size != align(size) || size < Minblock {
			errs = append(errs, fmt.Errorf(
				"block %v size %v not conformant", bp, size))
		}
		if bp+size > hi { // footer would land outside the arena
			errs = append(errs, fmt.Errorf(
				"block %v size %v runs past arena end %v", bp, size, hi))
			break
		}
		fw := getword(h.buf, bp+size-dsize)
		if fsize := unpacksize(fw); fsize != size {
			errs = append(errs, fmt.Errorf(
				"block %v header size %v != footer size %v", bp, size, fsize))
			break // cannot trust the chain beyond this block
		}
		if falloc := unpackalloc(fw); falloc != alloc {
			errs = append(errs, fmt.Errorf(
				"block %v header alloc %v != footer alloc %v",
				bp, alloc, falloc))
		}
		if !alloc {
			nfreeblocks++
			if !prevalloc {
				errs = append(errs, fmt.Errorf(
					"adjacent free blocks at %v", bp))
			}
		}
		prevalloc = alloc
	}

	// the free list is exactly the set of free blocks
	if nfree != nfreeblocks {
		errs = append(errs, fmt.Errorf(
			"free list holds %v blocks, chain has %v free", nfree,
			nfreeblocks))
	}
	return errs
}

// Validate panic with the first violated invariant, if any. Wraps
// Check for callers that treat corruption as fatal.
func (h *Heap) Validate() {
	if errs := h.Check(); len(errs) > 0 {
		panicerr("Validate(): %v", errs[0])
	}
}
