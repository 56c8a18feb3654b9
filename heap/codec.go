package heap

import "encoding/binary"

// Block layout, all offsets relative to the arena's byte region and
// `bp` always naming a block's payload offset:
//
//	bp-4       header word, pack(size, allocated)
//	bp         prevfree link (free blocks only, 8 bytes)
//	bp+8       nextfree link (free blocks only, 8 bytes)
//	bp+size-8  footer word, same pack(size, allocated)
//
// size counts the whole block, header and footer included. Links are
// payload offsets of other free blocks, zero is the null link.

// pack a block size and allocated flag into one tag word.
func pack(size int64, allocated bool) uint32 {
	w := uint32(size)
	if allocated {
		w |= 0x1
	}
	return w
}

// unpacksize size field of a tag word.
func unpacksize(w uint32) int64 {
	return int64(w &^ 0x7)
}

// unpackalloc allocated flag of a tag word.
func unpackalloc(w uint32) bool {
	return (w & 0x1) == 1
}

func getword(buf []byte, off int64) uint32 {
	return binary.LittleEndian.Uint32(buf[off : off+wsize])
}

func putword(buf []byte, off int64, w uint32) {
	binary.LittleEndian.PutUint32(buf[off:off+wsize], w)
}

func getlink(buf []byte, off int64) int64 {
	return int64(binary.LittleEndian.Uint64(buf[off : off+dsize]))
}

func putlink(buf []byte, off, bp int64) {
	binary.LittleEndian.PutUint64(buf[off:off+dsize], uint64(bp))
}

//---- address arithmetic over payload offsets.

func (h *Heap) hdr(bp int64) int64 {
	return bp - wsize
}

func (h *Heap) ftr(bp int64) int64 {
	return bp + h.blocksize(bp) - dsize
}

func (h *Heap) blocksize(bp int64) int64 {
	return unpacksize(getword(h.buf, bp-wsize))
}

func (h *Heap) isallocated(bp int64) bool {
	return unpackalloc(getword(h.buf, bp-wsize))
}

// nextblk payload offset of the physical successor.
func (h *Heap) nextblk(bp int64) int64 {
	return bp + h.blocksize(bp)
}

// prevblk payload offset of the physical predecessor, read off the
// predecessor's footer sitting just above our header.
func (h *Heap) prevblk(bp int64) int64 {
	return bp - unpacksize(getword(h.buf, bp-dsize))
}

//---- intrusive free-list links, valid only while a block is free.

func (h *Heap) prevfree(bp int64) int64 {
	return getlink(h.buf, bp)
}

func (h *Heap) setprevfree(bp, to int64) {
	putlink(h.buf, bp, to)
}

func (h *Heap) nextfree(bp int64) int64 {
	return getlink(h.buf, bp+dsize)
}

func (h *Heap) setnextfree(bp, to int64) {
	putlink(h.buf, bp+dsize, to)
}
