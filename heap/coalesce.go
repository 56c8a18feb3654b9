package heap

// coalesce merge bp with free physical neighbours and return the
// payload offset of the merged block. Absorbed neighbours are removed
// from the free list, the merged block's tags are rewritten free, but
// the result is NOT inserted into the free list. The caller decides:
// after a free or a growth the block goes straight in, during a split
// the remainder is coalesced first and inserted afterwards.
//
// While the free list is empty no neighbour can be free, the
// prologue/epilogue sentinels keep the tag reads in bounds otherwise.
func (h *Heap) coalesce(bp int64) int64 {
	if h.freep == 0 {
		return bp
	}

	prevalloc := unpackalloc(getword(h.buf, bp-dsize))
	nextbp := h.nextblk(bp)
	nextalloc := unpackalloc(getword(h.buf, nextbp-wsize))
	size := h.blocksize(bp)

	switch {
	case prevalloc && nextalloc:
		return bp

	case !prevalloc && nextalloc: // extend backward
		pbp := h.prevblk(bp)
		size += h.blocksize(pbp)
		h.removefree(pbp)
		bp = pbp

	case prevalloc && !nextalloc: // extend forward
		size += h.blocksize(nextbp)
		h.removefree(nextbp)

	default: // merge all three spans
		pbp := h.prevblk(bp)
		size += h.blocksize(pbp) + h.blocksize(nextbp)
		h.removefree(pbp)
		h.removefree(nextbp)
		bp = pbp
	}

	putword(h.buf, h.hdr(bp), pack(size, false))
	putword(h.buf, bp+size-dsize, pack(size, false))
	h.n_coalesces++
	return bp
}
