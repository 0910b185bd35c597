package memutils

import "math"

// Statistics summarizes how a heap arena is being used.
//
// A block is any header the bump cursor has carved out of the arena, whether it currently holds a live
// allocation or sits on the free list. Blocks are never split or merged, so BlockCount only grows.
type Statistics struct {
	// ArenaBytes is the fixed capacity of the arena
	ArenaBytes int
	// CarvedBytes is the number of bytes behind the bump cursor, headers included
	CarvedBytes int
	// BlockCount is the number of blocks carved from the arena
	BlockCount int
	// AllocationCount is the number of live allocations
	AllocationCount int
	// AllocationBytes is the usable payload capacity of all live allocations
	AllocationBytes int
	// FreeBlockCount is the number of blocks on the free list
	FreeBlockCount int
	// FreeBlockBytes is the usable payload capacity of all blocks on the free list
	FreeBlockBytes int
}

func (s *Statistics) Clear() {
	s.ArenaBytes = 0
	s.CarvedBytes = 0
	s.BlockCount = 0
	s.AllocationCount = 0
	s.AllocationBytes = 0
	s.FreeBlockCount = 0
	s.FreeBlockBytes = 0
}

// UncarvedBytes is the space past the bump cursor that has never been handed out
func (s *Statistics) UncarvedBytes() int {
	return s.ArenaBytes - s.CarvedBytes
}

func (s *Statistics) AddStatistics(other *Statistics) {
	s.ArenaBytes += other.ArenaBytes
	s.CarvedBytes += other.CarvedBytes
	s.BlockCount += other.BlockCount
	s.AllocationCount += other.AllocationCount
	s.AllocationBytes += other.AllocationBytes
	s.FreeBlockCount += other.FreeBlockCount
	s.FreeBlockBytes += other.FreeBlockBytes
}

// DetailedStatistics extends Statistics with size extremes for live and free blocks. Clear must be
// called before the first Add so the minimums start from math.MaxInt.
type DetailedStatistics struct {
	Statistics
	AllocationSizeMin int
	AllocationSizeMax int
	FreeBlockSizeMin  int
	FreeBlockSizeMax  int
}

func (s *DetailedStatistics) Clear() {
	s.Statistics.Clear()
	s.AllocationSizeMin = math.MaxInt
	s.AllocationSizeMax = 0
	s.FreeBlockSizeMin = math.MaxInt
	s.FreeBlockSizeMax = 0
}

func (s *DetailedStatistics) AddFreeBlock(size int) {
	s.BlockCount++
	s.FreeBlockCount++
	s.FreeBlockBytes += size

	if size < s.FreeBlockSizeMin {
		s.FreeBlockSizeMin = size
	}

	if size > s.FreeBlockSizeMax {
		s.FreeBlockSizeMax = size
	}
}

func (s *DetailedStatistics) AddAllocation(size int) {
	s.BlockCount++
	s.AllocationCount++
	s.AllocationBytes += size

	if size < s.AllocationSizeMin {
		s.AllocationSizeMin = size
	}

	if size > s.AllocationSizeMax {
		s.AllocationSizeMax = size
	}
}

func (s *DetailedStatistics) AddDetailedStatistics(other *DetailedStatistics) {
	s.Statistics.AddStatistics(&other.Statistics)

	if other.FreeBlockSizeMin < s.FreeBlockSizeMin {
		s.FreeBlockSizeMin = other.FreeBlockSizeMin
	}

	if other.FreeBlockSizeMax > s.FreeBlockSizeMax {
		s.FreeBlockSizeMax = other.FreeBlockSizeMax
	}

	if other.AllocationSizeMin < s.AllocationSizeMin {
		s.AllocationSizeMin = other.AllocationSizeMin
	}

	if other.AllocationSizeMax > s.AllocationSizeMax {
		s.AllocationSizeMax = other.AllocationSizeMax
	}
}
