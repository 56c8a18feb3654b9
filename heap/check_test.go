package heap

import "strings"
import "testing"

import s "github.com/bnclabs/gosettings"
import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

func checkheap(t *testing.T) *Heap {
	t.Helper()
	h, err := NewHeap(1024*1024, s.Settings{"chunksize": 4096})
	require.NoError(t, err)
	require.Empty(t, h.Check())
	return h
}

func TestCheckClean(t *testing.T) {
	h := checkheap(t)
	for i := 0; i < 100; i++ {
		h.Malloc(int64(i + 1))
	}
	bp := h.Malloc(500)
	h.Free(bp)
	assert.Empty(t, h.Check())
}

func TestCheckPrologue(t *testing.T) {
	h := checkheap(t)
	putword(h.buf, h.hdr(h.listp), pack(32, true))
	errs := h.Check()
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), "prologue")
}

func TestCheckEpilogue(t *testing.T) {
	h := checkheap(t)
	putword(h.buf, h.arena.Hi()-wsize, pack(0, false))
	errs := h.Check()
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), "epilogue")
}

func TestCheckTagMismatch(t *testing.T) {
	h := checkheap(t)
	bp := h.Malloc(64)
	// flip the footer's allocated flag only.
	size := h.blocksize(bp)
	putword(h.buf, bp+size-dsize, pack(size, false))
	errs := h.Check()
	require.NotEmpty(t, errs)
	found := false
	for _, err := range errs {
		if strings.Contains(err.Error(), "footer alloc") {
			found = true
		}
	}
	assert.True(t, found, "expected a footer mismatch violation")
}

func TestCheckFreelinks(t *testing.T) {
	h := checkheap(t)
	a := h.Malloc(16)
	h.Malloc(16) // hold a's successor allocated
	h.Free(a)

	// break symmetry between the two free blocks.
	next := h.nextfree(h.freep)
	require.NotEqual(t, int64(0), next)
	h.setprevfree(next, 12345678)
	errs := h.Check()
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), "asymmetric")
}

func TestCheckDoubleFree(t *testing.T) {
	h := checkheap(t)
	a := h.Malloc(16)
	h.Malloc(16)
	h.Free(a)
	h.Free(a) // out of contract, the checker should notice
	assert.NotEmpty(t, h.Check())
}

func TestValidatePanics(t *testing.T) {
	h := checkheap(t)
	putword(h.buf, h.arena.Hi()-wsize, pack(8, true))
	assert.Panics(t, func() { h.Validate() })
}
