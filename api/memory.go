package api

// Memory interface for arena providers. A provider owns a single
// contiguous byte region bounded by [Lo, Hi), growing monotonically
// via Sbrk and never shrinking. Implementations need not be thread
// safe.
type Memory interface {
	// Sbrk grow the region by n bytes and return the offset where the
	// new bytes begin, that is, the previous high-water mark. Fails
	// with ErrorOutofMemory when the provider cannot grow.
	Sbrk(n int64) (int64, error)

	// Lo lowest offset of the region, always zero for buffer backed
	// providers.
	Lo() int64

	// Hi one past the highest usable offset, the high-water mark.
	Hi() int64

	// Size number of usable bytes, Hi() - Lo().
	Size() int64

	// Bytes the backing region. The slice stays valid across Sbrk
	// calls, only [Lo, Hi) may be touched.
	Bytes() []byte
}
