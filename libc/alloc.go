package libc

import (
	"github.com/zigu-os/freestand/heap"
	"golang.org/x/exp/slog"
)

// Malloc returns a block of at least size bytes, or Null with errno set to ENOMEM
func (r *Runtime) Malloc(size int) heap.Ptr {
	ptr, err := r.heap.Acquire(size)
	if err != nil {
		r.allocFailed("Runtime::Malloc", err)
		return heap.Null
	}
	return ptr
}

// Free releases a block returned by Malloc, Calloc or Realloc. Null, already released and foreign
// pointers are ignored.
func (r *Runtime) Free(ptr heap.Ptr) {
	err := r.heap.Release(ptr)
	if err != nil {
		r.logger.Debug("Runtime::Free ignored an invalid pointer", slog.Int("Ptr", int(ptr)), slog.Any("Error", err))
	}
}

// Realloc resizes the block at ptr, moving it if it cannot grow in place. On failure it returns
// Null and ptr is still valid. An invalid ptr is ignored and yields Null.
func (r *Runtime) Realloc(ptr heap.Ptr, size int) heap.Ptr {
	newPtr, err := r.heap.Resize(ptr, size)
	if err != nil {
		r.allocFailed("Runtime::Realloc", err)
		return heap.Null
	}
	return newPtr
}

// Calloc returns a zeroed block for count elements of size bytes. A product that overflows fails.
func (r *Runtime) Calloc(count, size int) heap.Ptr {
	ptr, err := r.heap.ZeroedAlloc(count, size)
	if err != nil {
		r.allocFailed("Runtime::Calloc", err)
		return heap.Null
	}
	return ptr
}

func (r *Runtime) allocFailed(method string, err error) {
	r.logger.Debug("    "+method+" FAILED", slog.Any("Error", err))
	r.SetErrno(ENOMEM)
}
