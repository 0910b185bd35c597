package heap

import (
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/zigu-os/freestand/memutils"
	"golang.org/x/exp/slog"
)

// AddStatistics sums this heap's counters into the statistics currently present in stats
func (m *Heap) AddStatistics(stats *memutils.Statistics) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.addStatistics(stats)
}

func (m *Heap) addStatistics(stats *memutils.Statistics) {
	stats.ArenaBytes += len(m.arena)
	stats.CarvedBytes += m.bump
	stats.BlockCount += m.blockCount
	stats.AllocationCount += m.allocCount
	stats.AllocationBytes += m.allocBytes
	stats.FreeBlockCount += m.freeCount
	stats.FreeBlockBytes += m.freeBytes
}

// AddDetailedStatistics walks every carved block and sums it into stats. This is O(blocks).
func (m *Heap) AddDetailedStatistics(stats *memutils.DetailedStatistics) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	stats.ArenaBytes += len(m.arena)
	stats.CarvedBytes += m.bump

	return m.walkBlocks(func(block header) error {
		if block.isLive() {
			stats.AddAllocation(block.size())
		} else {
			stats.AddFreeBlock(block.size())
		}
		return nil
	})
}

// VisitAllRegions calls handleBlock once for every carved block, in address order. The heap is
// locked for the duration of the walk, so handleBlock must not call back into the heap.
func (m *Heap) VisitAllRegions(handleBlock func(ptr Ptr, size int, free bool) error) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.walkBlocks(func(block header) error {
		return handleBlock(block.payload(), block.size(), !block.isLive())
	})
}

// VisitTrackedAllocations calls visitor for every live pointer with the size the caller last
// requested for it, until visitor returns false. Iteration order is unspecified. It only reports
// anything when the heap was created with CreateTrackAllocations.
func (m *Heap) VisitTrackedAllocations(visitor func(ptr Ptr, requestedSize int) bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.tracker.visit(visitor)
}

// DebugLogAllAllocations calls logFunc for every live block, typically to report leaks at shutdown
func (m *Heap) DebugLogAllAllocations(logger *slog.Logger, logFunc func(log *slog.Logger, ptr Ptr, size int)) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	_ = m.walkBlocks(func(block header) error {
		if block.isLive() {
			logFunc(logger, block.payload(), block.size())
		}
		return nil
	})
}

// BlockJsonData populates a json object with summary information about the arena
func (m *Heap) BlockJsonData(json jwriter.ObjectState) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.blockJsonData(json)
}

func (m *Heap) blockJsonData(json jwriter.ObjectState) {
	var stats memutils.Statistics
	m.addStatistics(&stats)

	json.Name("TotalBytes").Int(stats.ArenaBytes)
	json.Name("CarvedBytes").Int(stats.CarvedBytes)
	json.Name("UncarvedBytes").Int(stats.UncarvedBytes())
	json.Name("Blocks").Int(stats.BlockCount)
	json.Name("Allocations").Int(stats.AllocationCount)
	json.Name("AllocationBytes").Int(stats.AllocationBytes)
	json.Name("FreeBlocks").Int(stats.FreeBlockCount)
	json.Name("FreeBlockBytes").Int(stats.FreeBlockBytes)
}

// BuildStatsString returns a JSON document describing the heap. When detailed is true, the document
// also lists every carved block.
func (m *Heap) BuildStatsString(detailed bool) string {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	writer := jwriter.NewWriter()
	root := writer.Object()

	total := root.Name("Total").Object()
	m.blockJsonData(total)
	total.End()

	if detailed {
		blocks := root.Name("Blocks").Array()
		err := m.walkBlocks(func(block header) error {
			obj := blocks.Object()
			defer obj.End()

			obj.Name("Offset").Int(block.offset)
			obj.Name("Ptr").Int(int(block.payload()))
			obj.Name("Size").Int(block.size())
			if block.isLive() {
				obj.Name("Type").String("Allocation")
			} else {
				obj.Name("Type").String("Free")
			}
			return nil
		})
		blocks.End()

		if err != nil {
			root.Name("Error").String(err.Error())
		}
	}

	root.End()

	return string(writer.Bytes())
}
