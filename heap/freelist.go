package heap

// Free blocks form an unordered doubly-linked list threaded through
// their payload bytes, headed by h.freep. Most-recently-freed blocks
// sit at the head, there is no ordering by size or address.

// insertfree make bp the new head of the free list. O(1).
func (h *Heap) insertfree(bp int64) {
	if h.freep == 0 {
		h.setprevfree(bp, 0)
		h.setnextfree(bp, 0)
		h.freep = bp
		return
	}
	h.setprevfree(h.freep, bp)
	h.setprevfree(bp, 0)
	h.setnextfree(bp, h.freep)
	h.freep = bp
}

// removefree unlink bp from the free list, wherever it sits. O(1).
func (h *Heap) removefree(bp int64) {
	prev, next := h.prevfree(bp), h.nextfree(bp)
	switch {
	case prev != 0 && next != 0: // interior
		h.setnextfree(prev, next)
		h.setprevfree(next, prev)

	case prev != 0 && next == 0: // tail
		h.setnextfree(prev, 0)

	case prev == 0 && next == 0: // sole element
		h.freep = 0

	default: // head with successor
		h.setprevfree(next, 0)
		h.freep = next
	}
}

// firstfit walk the free list from the head and return the first
// block of at least asize bytes, zero when nothing fits. O(n) in the
// free-list length, a deliberate trade of throughput for simplicity.
func (h *Heap) firstfit(asize int64) int64 {
	for bp := h.freep; bp != 0; bp = h.nextfree(bp) {
		if asize <= h.blocksize(bp) {
			return bp
		}
	}
	return 0
}

// freelength number of blocks on the free list.
func (h *Heap) freelength() (n int64) {
	for bp := h.freep; bp != 0; bp = h.nextfree(bp) {
		n++
	}
	return n
}
