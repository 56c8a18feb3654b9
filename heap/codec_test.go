package heap

import "testing"

import s "github.com/bnclabs/gosettings"

func TestPack(t *testing.T) {
	for _, size := range []int64{0, 8, 24, 4096, 1 << 20} {
		if w := pack(size, false); unpacksize(w) != size {
			t.Errorf("expected %v, got %v", size, unpacksize(w))
		} else if unpackalloc(w) {
			t.Errorf("expected free for size %v", size)
		}
		if w := pack(size, true); unpacksize(w) != size {
			t.Errorf("expected %v, got %v", size, unpacksize(w))
		} else if !unpackalloc(w) {
			t.Errorf("expected allocated for size %v", size)
		}
	}
}

func TestWords(t *testing.T) {
	buf := make([]byte, 64)
	putword(buf, 12, pack(40, true))
	if w := getword(buf, 12); unpacksize(w) != 40 || !unpackalloc(w) {
		t.Errorf("unexpected word %x", w)
	}
	putlink(buf, 16, 4128)
	if off := getlink(buf, 16); off != 4128 {
		t.Errorf("expected %v, got %v", 4128, off)
	}
	putlink(buf, 24, 0)
	if off := getlink(buf, 24); off != 0 {
		t.Errorf("expected null link, got %v", off)
	}
}

func TestAlign(t *testing.T) {
	testcases := [][2]int64{
		{0, 0}, {1, 8}, {7, 8}, {8, 8}, {9, 16}, {4096, 4096},
		{4097, 4104},
	}
	for _, tcase := range testcases {
		if x := align(tcase[0]); x != tcase[1] {
			t.Errorf("align(%v) expected %v, got %v", tcase[0], tcase[1], x)
		}
	}
}

func TestAdjustsize(t *testing.T) {
	testcases := [][2]int64{
		{1, 24}, {8, 24}, {16, 24}, {17, 32}, {24, 32}, {100, 112},
		{4096, 4104},
	}
	for _, tcase := range testcases {
		if x := adjustsize(tcase[0]); x != tcase[1] {
			t.Errorf(
				"adjustsize(%v) expected %v, got %v",
				tcase[0], tcase[1], x)
		}
	}
}

func TestBlockArithmetic(t *testing.T) {
	h, err := NewHeap(1024*1024, s.Settings{"chunksize": 4096})
	if err != nil {
		t.Fatal(err)
	}
	// initial free block right after the prologue sentinel.
	bp := h.nextblk(h.listp)
	if bp != 32 {
		t.Errorf("expected %v, got %v", 32, bp)
	} else if x := h.blocksize(bp); x != 4096 {
		t.Errorf("expected %v, got %v", 4096, x)
	} else if x := h.hdr(bp); x != 28 {
		t.Errorf("expected %v, got %v", 28, x)
	} else if x := h.ftr(bp); x != 4120 {
		t.Errorf("expected %v, got %v", 4120, x)
	} else if x := h.nextblk(bp); x != 4128 {
		t.Errorf("expected %v, got %v", 4128, x)
	} else if x := h.prevblk(bp); x != h.listp {
		t.Errorf("expected %v, got %v", h.listp, x)
	} else if h.isallocated(bp) {
		t.Errorf("expected initial block to be free")
	}
	// prologue sentinel
	if x := h.blocksize(h.listp); x != Minblock {
		t.Errorf("expected %v, got %v", Minblock, x)
	} else if !h.isallocated(h.listp) {
		t.Errorf("expected prologue to be allocated")
	}
	// epilogue sentinel
	ep := h.nextblk(bp)
	if x := h.blocksize(ep); x != 0 {
		t.Errorf("expected %v, got %v", 0, x)
	} else if !h.isallocated(ep) {
		t.Errorf("expected epilogue to be allocated")
	}
}
