package heap

import "fmt"

// align round n up to the nearest multiple of Alignment.
func align(n int64) int64 {
	return (n + Alignment - 1) &^ (Alignment - 1)
}

// adjustsize requested payload bytes to a block size, accounting for
// header/footer overhead, alignment and the minimum block size.
func adjustsize(n int64) int64 {
	asize := align(n + dsize)
	if asize < Minblock {
		asize = Minblock
	}
	return asize
}

func panicerr(fmsg string, args ...interface{}) {
	panic(fmt.Errorf(fmsg, args...))
}
