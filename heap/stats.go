package heap

import "unsafe"

import "github.com/bnclabs/golog"
import humanize "github.com/dustin/go-humanize"

// Info implement api.Mallocer{} interface. capacity is the arena's
// upper bound, heap the bytes actually obtained from the provider,
// alloc the block bytes currently handed out and overhead the
// bookkeeping cost of the heap itself.
func (h *Heap) Info() (capacity, heap, alloc, overhead int64) {
	self := int64(unsafe.Sizeof(*h))
	return h.capacity, h.arena.Size(), h.mallocated, self + 4*dsize
}

// Utilization ratio of handed-out bytes to arena bytes.
func (h *Heap) Utilization() float64 {
	if size := h.arena.Size(); size > 0 {
		return float64(h.mallocated) / float64(size)
	}
	return 0
}

// Stats accounting counters and gauges for this heap.
func (h *Heap) Stats() map[string]interface{} {
	stats := make(map[string]interface{})
	stats["n_mallocs"] = h.n_mallocs
	stats["n_frees"] = h.n_frees
	stats["n_reallocs"] = h.n_reallocs
	stats["n_callocs"] = h.n_callocs
	stats["n_extends"] = h.n_extends
	stats["n_splits"] = h.n_splits
	stats["n_coalesces"] = h.n_coalesces
	stats["mallocated"] = h.mallocated
	stats["heapsize"] = h.arena.Size()
	stats["capacity"] = h.capacity
	stats["freelength"] = h.freelength()
	return stats
}

// Log a human readable summary of the heap's accounting.
func (h *Heap) Log() {
	capacity, heapsz, alloc, _ := h.Info()
	log.Infof(
		"%v capacity: %v, heap: %v, alloc: %v, utilization: %2.02f%%\n",
		h.logprefix, humanize.Bytes(uint64(capacity)),
		humanize.Bytes(uint64(heapsz)), humanize.Bytes(uint64(alloc)),
		h.Utilization()*100)
	log.Infof(
		"%v mallocs: %v, frees: %v, extends: %v, splits: %v, "+
			"coalesces: %v, freelength: %v\n",
		h.logprefix, h.n_mallocs, h.n_frees, h.n_extends, h.n_splits,
		h.n_coalesces, h.freelength())
}
