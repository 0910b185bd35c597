package memutils

import "github.com/pkg/errors"

var (
	// ErrOutOfMemory is returned when the arena cannot satisfy an allocation: the bump cursor would pass the
	// end of the arena and no block on the free list is large enough.
	ErrOutOfMemory = errors.New("heap arena exhausted")
	// ErrInvalidPointer is returned when a pointer passed to Release or Resize does not point exactly past a
	// live block header. The heap is left untouched when this is returned.
	ErrInvalidPointer = errors.New("pointer does not reference a live allocation")
	// ErrInvalidSize is returned for negative sizes and element counts
	ErrInvalidSize = errors.New("size must not be negative")
	// ErrCorruption is returned by corruption checks when a debug margin was overwritten
	ErrCorruption = errors.New("memory corruption detected")
)
