// Package heap implements a fixed-arena allocator: a bump cursor carves blocks out of a single
// byte region that never grows, and released blocks are kept on a singly-linked free list for
// reuse. Blocks are reused whole (first fit, no splitting) and adjacent free blocks are never
// merged, so every operation is bounded by the length of the free list.
package heap

import (
	"math"
	"math/bits"

	"github.com/cockroachdb/errors"
	"github.com/zigu-os/freestand/internal/utils"
	"github.com/zigu-os/freestand/memutils"
	"golang.org/x/exp/slog"
)

// Ptr is the address of a payload: a byte offset into the arena. Memory returns the slice these
// offsets index into.
type Ptr int

// Null is the pointer value that never refers to a payload
const Null Ptr = 0

// Heap manages a single arena. All methods are safe for concurrent use unless the heap was created
// with CreateExternallySynchronized.
type Heap struct {
	logger *slog.Logger
	mutex  utils.OptionalMutex
	flags  CreateFlags

	arena  []byte
	mapped bool

	bump     int
	freeHead int

	blockCount int
	allocCount int
	allocBytes int
	freeCount  int
	freeBytes  int

	tracker   *allocationTracker
	callbacks memoryCallbacks
}

// lockedHeap exposes validation to memutils.DebugValidate while the heap mutex is already held
type lockedHeap struct {
	heap *Heap
}

func (h lockedHeap) Validate() error {
	return h.heap.validate()
}

// Size returns the capacity of the arena in bytes
func (m *Heap) Size() int {
	return len(m.arena)
}

// Memory returns the whole arena. Ptr values are indices into this slice; it is the address space
// that string and memory primitives operate on.
func (m *Heap) Memory() []byte {
	return m.arena
}

// BumpOffset returns the offset of the first byte that has never been carved into a block
func (m *Heap) BumpOffset() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.bump
}

// AllocationCount returns the number of live allocations
func (m *Heap) AllocationCount() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.allocCount
}

// FreeRegionsCount returns the number of blocks on the free list plus one if any uncarved space remains
func (m *Heap) FreeRegionsCount() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	count := m.freeCount
	if m.bump < len(m.arena) {
		count++
	}
	return count
}

// SumFreeSize returns the payload capacity of all free-listed blocks plus the uncarved tail of the arena
func (m *Heap) SumFreeSize() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.freeBytes + len(m.arena) - m.bump
}

// IsEmpty returns true if no allocation is live
func (m *Heap) IsEmpty() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.allocCount == 0
}

// liveHeader returns the header in front of ptr if ptr points exactly past a block header whose
// tag is live, and whose extent lies inside the carved part of the arena
func (m *Heap) liveHeader(ptr Ptr) (header, bool) {
	offset := int(ptr) - HeaderSize
	if offset < 0 || offset%memutils.BlockAlignment != 0 || offset+HeaderSize > m.bump {
		return header{}, false
	}

	h := m.header(offset)
	if !h.isLive() {
		return header{}, false
	}

	size := h.size()
	if size <= 0 || size%memutils.BlockAlignment != 0 || size > m.bump-offset-HeaderSize-memutils.DebugMargin {
		return header{}, false
	}

	if !m.tracker.owns(ptr) {
		return header{}, false
	}

	return h, true
}

func roundRequest(size int) int {
	if size == 0 {
		size = 1
	}
	return memutils.AlignUp(size, memutils.BlockAlignment)
}

func (m *Heap) acquire(size int) (header, error) {
	if size < 0 {
		return header{}, errors.Wrapf(memutils.ErrInvalidSize, "requested %d bytes", size)
	}

	// Anything larger than the arena can never fit, and rounding it could overflow
	if size > len(m.arena) {
		return header{}, errors.Wrapf(memutils.ErrOutOfMemory, "requested %d bytes from a %d byte arena", size, len(m.arena))
	}

	size = roundRequest(size)

	// First fit over the free list
	prev := noBlock
	for offset := m.freeHead; offset != noBlock; {
		block := m.header(offset)
		next := block.nextFree()

		if block.size() >= size {
			if prev == noBlock {
				m.freeHead = next
			} else {
				m.header(prev).setNextFree(next)
			}

			block.setNextFree(noBlock)
			block.setTag(liveTag)

			m.freeCount--
			m.freeBytes -= block.size()
			m.allocCount++
			m.allocBytes += block.size()

			memutils.WriteMagicValue(m.arena, int(block.payload())+block.size())
			return block, nil
		}

		prev = offset
		offset = next
	}

	// Carve from the bump cursor
	needed := HeaderSize + size + memutils.DebugMargin
	if m.bump+needed > len(m.arena) {
		return header{}, errors.Wrapf(memutils.ErrOutOfMemory, "requested %d bytes with %d bytes left in the arena", size, len(m.arena)-m.bump)
	}

	block := m.header(m.bump)
	block.init(size)
	m.bump += needed

	m.blockCount++
	m.allocCount++
	m.allocBytes += size

	memutils.WriteMagicValue(m.arena, int(block.payload())+size)
	return block, nil
}

func (m *Heap) release(ptr Ptr) (header, error) {
	block, ok := m.liveHeader(ptr)
	if !ok {
		return header{}, errors.Wrapf(memutils.ErrInvalidPointer, "release of %#x", int(ptr))
	}

	block.setTag(0)
	block.setNextFree(m.freeHead)
	m.freeHead = block.offset

	m.allocCount--
	m.allocBytes -= block.size()
	m.freeCount++
	m.freeBytes += block.size()

	m.tracker.untrack(ptr)

	return block, nil
}

// acquireLocked runs acquire under the heap mutex. The deferred unlock keeps the heap usable if
// DebugValidate panics.
func (m *Heap) acquireLocked(size, requested int, zero bool) (header, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	block, err := m.acquire(size)
	if err != nil {
		return header{}, err
	}

	if zero {
		clear(m.arena[block.payload() : int(block.payload())+block.size()])
	}
	m.tracker.track(block.payload(), requested)
	memutils.DebugValidate(lockedHeap{m})

	return block, nil
}

func (m *Heap) releaseLocked(ptr Ptr) (header, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	block, err := m.release(ptr)
	if err != nil {
		return header{}, err
	}
	memutils.DebugValidate(lockedHeap{m})

	return block, nil
}

// resizeLocked grows or keeps the block at ptr under the heap mutex. moved is false when the block
// was resized in place.
func (m *Heap) resizeLocked(ptr Ptr, size int) (newBlock header, oldSize int, moved bool, err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	oldBlock, ok := m.liveHeader(ptr)
	if !ok {
		return header{}, 0, false, errors.Wrapf(memutils.ErrInvalidPointer, "resize of %#x", int(ptr))
	}

	oldSize = oldBlock.size()
	if size <= oldSize {
		m.tracker.track(ptr, size)
		return header{}, oldSize, false, nil
	}

	newBlock, err = m.acquire(size)
	if err != nil {
		return header{}, oldSize, false, err
	}

	newPtr := newBlock.payload()
	copy(m.arena[newPtr:int(newPtr)+oldSize], m.arena[ptr:int(ptr)+oldSize])

	_, err = m.release(ptr)
	if err != nil {
		panic(errors.NewAssertionErrorWithWrappedErrf(err, "block at %#x was live a moment ago", int(ptr)))
	}
	m.tracker.track(newPtr, size)

	memutils.DebugValidate(lockedHeap{m})
	return newBlock, oldSize, true, nil
}

// Acquire hands out a block with at least size usable bytes. Requests are rounded up to a multiple
// of 16 and a request for 0 bytes is treated as a request for 1.
//
// The first block on the free list that is large enough is reused whole, even if it is much larger
// than the request. Otherwise a new block is carved at the bump cursor. When neither works, Null is
// returned with an error wrapping memutils.ErrOutOfMemory.
func (m *Heap) Acquire(size int) (Ptr, error) {
	m.logger.Debug("Heap::Acquire", slog.Int("Size", size))

	block, err := m.acquireLocked(size, size, false)
	if err != nil {
		m.logger.Debug("    Heap::Acquire FAILED", slog.Int("Size", size))
		return Null, err
	}

	ptr, capacity := block.payload(), block.size()
	m.callbacks.Acquire(ptr, capacity)
	return ptr, nil
}

// Release returns a block to the free list. Releasing Null does nothing and returns nil.
//
// A pointer that does not point exactly past a live block header (a double release, a pointer into
// the middle of a payload, an address outside the arena) leaves the heap untouched and returns an
// error wrapping memutils.ErrInvalidPointer. Callers following the C contract can ignore it.
func (m *Heap) Release(ptr Ptr) error {
	if ptr == Null {
		return nil
	}

	m.logger.Debug("Heap::Release", slog.Int("Ptr", int(ptr)))

	block, err := m.releaseLocked(ptr)
	if err != nil {
		m.logger.Debug("    Heap::Release IGNORED", slog.Int("Ptr", int(ptr)))
		return err
	}

	m.callbacks.Release(ptr, block.size())
	return nil
}

// Resize changes the size of the allocation at ptr.
//
// A Null ptr behaves as Acquire(size). A size of 0 releases ptr and returns Null. If the block's
// capacity already covers the rounded size, ptr is returned unchanged: blocks never shrink.
// Otherwise a new block is acquired, the old payload copied into it and the old block released.
// If the new block cannot be acquired, ptr remains valid and untouched.
func (m *Heap) Resize(ptr Ptr, size int) (Ptr, error) {
	if ptr == Null {
		return m.Acquire(size)
	}
	if size == 0 {
		return Null, m.Release(ptr)
	}

	m.logger.Debug("Heap::Resize", slog.Int("Ptr", int(ptr)), slog.Int("Size", size))

	if size < 0 {
		return Null, errors.Wrapf(memutils.ErrInvalidSize, "resize of %#x to %d bytes", int(ptr), size)
	}

	newBlock, oldSize, moved, err := m.resizeLocked(ptr, size)
	if errors.Is(err, memutils.ErrInvalidPointer) {
		m.logger.Debug("    Heap::Resize IGNORED", slog.Int("Ptr", int(ptr)))
		return Null, err
	} else if err != nil {
		m.logger.Debug("    Heap::Resize FAILED", slog.Int("Ptr", int(ptr)), slog.Int("Size", size))
		return Null, err
	}

	if !moved {
		return ptr, nil
	}

	newPtr := newBlock.payload()
	m.callbacks.Acquire(newPtr, newBlock.size())
	m.callbacks.Release(ptr, oldSize)

	return newPtr, nil
}

// ZeroedAlloc acquires a block for count elements of elemSize bytes each and zeroes its entire
// payload. A product that overflows fails with memutils.ErrOutOfMemory rather than under-allocating.
func (m *Heap) ZeroedAlloc(count, elemSize int) (Ptr, error) {
	m.logger.Debug("Heap::ZeroedAlloc", slog.Int("Count", count), slog.Int("ElementSize", elemSize))

	if count < 0 || elemSize < 0 {
		return Null, errors.Wrapf(memutils.ErrInvalidSize, "%d elements of %d bytes", count, elemSize)
	}

	hi, total := bits.Mul64(uint64(count), uint64(elemSize))
	if hi != 0 || total > math.MaxInt {
		return Null, errors.Wrapf(memutils.ErrOutOfMemory, "%d elements of %d bytes overflows", count, elemSize)
	}

	block, err := m.acquireLocked(int(total), int(total), true)
	if err != nil {
		m.logger.Debug("    Heap::ZeroedAlloc FAILED", slog.Int("Count", count), slog.Int("ElementSize", elemSize))
		return Null, err
	}

	ptr, capacity := block.payload(), block.size()
	m.callbacks.Acquire(ptr, capacity)
	return ptr, nil
}

// Capacity returns the usable size of the live block at ptr, which is at least the size it was
// last acquired or resized to
func (m *Heap) Capacity(ptr Ptr) (int, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	block, ok := m.liveHeader(ptr)
	if !ok {
		return 0, errors.Wrapf(memutils.ErrInvalidPointer, "capacity of %#x", int(ptr))
	}

	return block.size(), nil
}

// Payload returns the usable bytes of the live block at ptr. The slice aliases the arena and its
// capacity is clipped to the block.
func (m *Heap) Payload(ptr Ptr) ([]byte, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	block, ok := m.liveHeader(ptr)
	if !ok {
		return nil, errors.Wrapf(memutils.ErrInvalidPointer, "payload of %#x", int(ptr))
	}

	end := int(ptr) + block.size()
	return m.arena[ptr:end:end], nil
}
