package heap

import (
	"encoding/binary"
	"math"
)

// Every block carved from the arena starts with a 32-byte header:
//
//	+0  size       usable payload bytes, a multiple of 16
//	+8  next_free  header offset of the next block on the free list, or noBlock
//	+16 tag        liveTag while the block is handed out, 0 otherwise
//	+24 padding    keeps the payload 16-byte aligned
//
// The payload follows immediately. In debug builds, memutils.DebugMargin bytes of magic values
// follow the payload.
const (
	// HeaderSize is the number of bytes of metadata placed in front of every payload
	HeaderSize = 32

	headerSizeOffset     = 0
	headerNextFreeOffset = 8
	headerTagOffset      = 16
	headerPadOffset      = 24

	liveTag uint64 = 0xDEADBEEF
	noBlock        = -1
)

type header struct {
	arena  []byte
	offset int
}

func (m *Heap) header(offset int) header {
	return header{arena: m.arena, offset: offset}
}

func (h header) payload() Ptr {
	return Ptr(h.offset + HeaderSize)
}

func (h header) size() int {
	return int(binary.LittleEndian.Uint64(h.arena[h.offset+headerSizeOffset:]))
}

func (h header) setSize(size int) {
	binary.LittleEndian.PutUint64(h.arena[h.offset+headerSizeOffset:], uint64(size))
}

func (h header) nextFree() int {
	next := binary.LittleEndian.Uint64(h.arena[h.offset+headerNextFreeOffset:])
	if next == math.MaxUint64 {
		return noBlock
	}
	return int(next)
}

func (h header) setNextFree(next int) {
	value := uint64(math.MaxUint64)
	if next != noBlock {
		value = uint64(next)
	}
	binary.LittleEndian.PutUint64(h.arena[h.offset+headerNextFreeOffset:], value)
}

func (h header) tag() uint64 {
	return binary.LittleEndian.Uint64(h.arena[h.offset+headerTagOffset:])
}

func (h header) setTag(tag uint64) {
	binary.LittleEndian.PutUint64(h.arena[h.offset+headerTagOffset:], tag)
}

func (h header) isLive() bool {
	return h.tag() == liveTag
}

// end is the offset of the first byte past this block, debug margin included
func (h header) end(debugMargin int) int {
	return h.offset + HeaderSize + h.size() + debugMargin
}

func (h header) init(size int) {
	h.setSize(size)
	h.setNextFree(noBlock)
	h.setTag(liveTag)
	binary.LittleEndian.PutUint64(h.arena[h.offset+headerPadOffset:], 0)
}
