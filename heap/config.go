package heap

import "github.com/cloudfoundry/gosigar"
import s "github.com/bnclabs/gosettings"

// Alignment unit for block sizes and payload offsets. Low bits of
// header and footer words are zero by this alignment, freeing bit
// zero to carry the allocated flag.
const Alignment = int64(8)

// word size of a header/footer tag.
const wsize = int64(4)

// double word, per-block overhead of one header and one footer.
const dsize = int64(8)

// Minblock smallest block this heap will carve out. A free block has
// to hold header, footer and two link words, blocks smaller than this
// are never created by splitting.
const Minblock = int64(24)

// Chunksize default increment, in bytes, by which the arena is grown
// when the free list cannot satisfy an allocation. Larger chunks mean
// fewer provider calls at the cost of over-growing small heaps.
const Chunksize = int64(4096)

// Maxcapacity block sizes are encoded in 32-bit words, a heap cannot
// manage more than this many bytes.
const Maxcapacity = int64(1) << 32

// Heap configurable parameters and default settings.
//
// "chunksize" (int64, default: Chunksize)
//		Arena growth increment in bytes, rounded up to Alignment.
//
// "debug.check" (bool, default: false)
//		Run the heap consistency checker after every growth and
//		every free, panic on the first violated invariant. Meant
//		for tests and debugging, not production.
func Defaultsettings() s.Settings {
	return s.Settings{
		"chunksize":   Chunksize,
		"debug.check": false,
	}
}

// Defaultcapacity for a heap when the application has no better
// estimate, a quarter of free system memory.
func Defaultcapacity() int64 {
	mem := sigar.Mem{}
	mem.Get()
	capacity := int64(mem.Free / 4)
	if capacity > Maxcapacity {
		capacity = Maxcapacity
	}
	return capacity
}
