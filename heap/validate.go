package heap

import (
	"github.com/cockroachdb/errors"
	"github.com/zigu-os/freestand/memutils"
)

// Validate walks every carved block and the free list and cross-checks them against the heap's
// counters. When the heap is functioning correctly it should not be possible for this method to
// return an error, but it can help diagnose a consumer that scribbles over block headers.
func (m *Heap) Validate() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.validate()
}

func (m *Heap) validate() error {
	if m.bump < 0 || m.bump > len(m.arena) {
		return errors.Errorf("bump cursor %d is outside of the %d byte arena", m.bump, len(m.arena))
	}

	var blockCount, allocCount, allocBytes, freeTagged, freeTaggedBytes int

	// Physical walk
	offset := 0
	for offset < m.bump {
		if m.bump-offset < HeaderSize {
			return errors.Errorf("block at offset %d has a truncated header", offset)
		}

		block := m.header(offset)
		size := block.size()
		if size <= 0 || size%memutils.BlockAlignment != 0 {
			return errors.Errorf("block at offset %d has invalid size %d", offset, size)
		}

		end := block.end(memutils.DebugMargin)
		if end <= offset || end > m.bump {
			return errors.Errorf("block at offset %d of size %d runs past the bump cursor at %d", offset, size, m.bump)
		}

		switch tag := block.tag(); tag {
		case liveTag:
			allocCount++
			allocBytes += size
		case 0:
			freeTagged++
			freeTaggedBytes += size
		default:
			return errors.Errorf("block at offset %d has unrecognized tag %#x", offset, tag)
		}

		blockCount++
		offset = end
	}

	// Free list walk
	var freeListCount, freeListBytes int
	for offset := m.freeHead; offset != noBlock; {
		if freeListCount >= blockCount {
			return errors.New("the free list contains a cycle")
		}

		if offset < 0 || offset+HeaderSize > m.bump || offset%memutils.BlockAlignment != 0 {
			return errors.Errorf("free list references offset %d, which is not a carved block", offset)
		}

		block := m.header(offset)
		if block.isLive() {
			return errors.Errorf("block at offset %d is in the free list but is live", offset)
		}

		freeListCount++
		freeListBytes += block.size()
		offset = block.nextFree()
	}

	if freeListCount != freeTagged {
		return errors.Errorf("the number of released blocks in the arena and the number of blocks in the free list do not match! free list size: %d, released blocks: %d", freeListCount, freeTagged)
	}

	if freeListBytes != freeTaggedBytes {
		return errors.Errorf("the free list holds %d bytes, but released blocks add up to %d", freeListBytes, freeTaggedBytes)
	}

	if blockCount != m.blockCount {
		return errors.Errorf("the block count of the heap is %d, but the arena holds %d blocks", m.blockCount, blockCount)
	}

	if allocCount != m.allocCount {
		return errors.Errorf("the allocation count of the heap is %d, but the live blocks only added up to %d", m.allocCount, allocCount)
	}

	if allocBytes != m.allocBytes {
		return errors.Errorf("the allocated size of the heap is %d, but the live blocks only added up to %d", m.allocBytes, allocBytes)
	}

	if freeListCount != m.freeCount || freeListBytes != m.freeBytes {
		return errors.Errorf("the heap expects %d free blocks of %d bytes, but the free list has %d blocks of %d bytes", m.freeCount, m.freeBytes, freeListCount, freeListBytes)
	}

	if m.tracker != nil && m.tracker.count() != allocCount {
		return errors.Errorf("the allocation tracker holds %d pointers, but there are %d live blocks", m.tracker.count(), allocCount)
	}

	return nil
}

// CheckCorruption verifies the magic values written after every live payload. It returns nil if
// every margin is intact.
//
// Margins are only written when the module is built with the build tag `debug_mem_utils`. Without
// it, this method always succeeds, though it still walks the whole arena.
func (m *Heap) CheckCorruption() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.walkBlocks(func(block header) error {
		if block.isLive() && !memutils.ValidateMagicValue(m.arena, int(block.payload())+block.size()) {
			return errors.Wrapf(memutils.ErrCorruption, "write past the end of the allocation at %#x", int(block.payload()))
		}
		return nil
	})
}

// walkBlocks visits every carved block in address order. It stops with an error if a header is
// damaged badly enough that the walk cannot continue.
func (m *Heap) walkBlocks(visit func(block header) error) error {
	for offset := 0; offset < m.bump; {
		block := m.header(offset)

		end := block.end(memutils.DebugMargin)
		if block.size() <= 0 || end <= offset || end > m.bump {
			return errors.Wrapf(memutils.ErrCorruption, "block header at offset %d is damaged", offset)
		}

		err := visit(block)
		if err != nil {
			return err
		}

		offset = end
	}

	return nil
}
