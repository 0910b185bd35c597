package heap

import (
	"io"
	"math/bits"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/zigu-os/freestand/internal/mmap"
	"github.com/zigu-os/freestand/memutils"
	"golang.org/x/exp/slog"
)

// CreateFlags indicate specific heap behaviors to activate or deactivate
type CreateFlags int32

const (
	// CreateExternallySynchronized ensures that the heap will not be synchronized internally. The
	// consumer must guarantee that it is used from only one goroutine at a time, or that calls are
	// serialized by some other mechanism (such as a cooperative scheduler), but the mutex is skipped.
	CreateExternallySynchronized CreateFlags = 1 << iota
	// CreateTrackAllocations keeps an index of every live pointer. Release and Resize reject any
	// pointer the heap did not hand out, even one that happens to sit behind a forged live tag,
	// and VisitTrackedAllocations can report the size each caller originally requested.
	CreateTrackAllocations
	// CreateMmapArena reserves the arena with an anonymous private mapping instead of a Go slice.
	// Destroy must be called to return the mapping.
	CreateMmapArena
)

var createFlagNames = map[CreateFlags]string{
	CreateExternallySynchronized: "CreateExternallySynchronized",
	CreateTrackAllocations:       "CreateTrackAllocations",
	CreateMmapArena:              "CreateMmapArena",
}

func (f CreateFlags) String() string {
	if f == 0 {
		return "None"
	}

	var sb strings.Builder
	for remaining := uint32(f); remaining != 0; {
		bit := CreateFlags(1 << bits.TrailingZeros32(remaining))
		remaining &^= uint32(bit)

		if sb.Len() > 0 {
			sb.WriteByte('|')
		}

		name, ok := createFlagNames[bit]
		if !ok {
			name = "Unknown"
		}
		sb.WriteString(name)
	}

	return sb.String()
}

const (
	// DefaultArenaSize is the arena capacity used when CreateOptions.ArenaSize is 0. It is equal to 8MiB.
	DefaultArenaSize int = 8 * 1024 * 1024
	// MinArenaSize is the smallest arena that can hold a single block
	MinArenaSize = HeaderSize + memutils.BlockAlignment
)

// CreateOptions contains optional settings when creating a heap
type CreateOptions struct {
	// Flags indicates specific heap behaviors to activate or deactivate
	Flags CreateFlags
	// ArenaSize is the fixed capacity of the arena in bytes. It is rounded down to a multiple of
	// 16. The arena never grows: once it is carved out, only the free list can satisfy requests.
	ArenaSize int

	// MemoryCallbackOptions is an optional set of callbacks that will be executed when blocks are
	// acquired and released
	MemoryCallbackOptions *MemoryCallbackOptions
}

// New reserves an arena and returns a heap managing it
//
// logger - Receives debug traces of every heap operation. A nil logger discards them.
//
// options - Optional parameters: it is valid to leave all the fields blank
func New(logger *slog.Logger, options CreateOptions) (*Heap, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	arenaSize := options.ArenaSize
	if arenaSize == 0 {
		arenaSize = DefaultArenaSize
	}
	arenaSize = memutils.AlignDown(arenaSize, memutils.BlockAlignment)
	if arenaSize < MinArenaSize {
		return nil, errors.Newf("arena size %d is smaller than the minimum of %d bytes", options.ArenaSize, MinArenaSize)
	}

	heap := &Heap{
		logger:    logger,
		flags:     options.Flags,
		freeHead:  noBlock,
		mapped:    options.Flags&CreateMmapArena != 0,
		tracker:   newAllocationTracker(options.Flags),
		callbacks: memoryCallbacks{Callbacks: options.MemoryCallbackOptions},
	}
	heap.callbacks.Heap = heap
	heap.mutex.UseMutex = options.Flags&CreateExternallySynchronized == 0

	if heap.mapped {
		arena, err := mmap.Reserve(arenaSize)
		if err != nil {
			return nil, err
		}
		heap.arena = arena
	} else {
		heap.arena = make([]byte, arenaSize)
	}

	logger.Debug("Heap::New", slog.Int("ArenaSize", arenaSize), slog.String("Flags", options.Flags.String()))

	return heap, nil
}

// Destroy gives up the arena. Every pointer handed out by the heap becomes invalid, and the heap
// behaves as an exhausted, empty arena afterward.
func (m *Heap) Destroy() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.logger.Debug("Heap::Destroy")

	arena := m.arena
	m.arena = nil
	m.bump = 0
	m.freeHead = noBlock
	m.blockCount = 0
	m.allocCount = 0
	m.allocBytes = 0
	m.freeCount = 0
	m.freeBytes = 0
	m.tracker.clear()

	if m.mapped && arena != nil {
		return mmap.Release(arena)
	}

	return nil
}
