// Package libc binds the heap, the string primitives, the format engine and the fatal paths into
// the C library surface a hosted interpreter expects. Addresses are heap.Ptr offsets into a single
// arena; heap.Null is the null pointer.
//
// Functions follow the C contracts: failures are reported through Null results and errno, never
// through Go errors, and passing a pointer outside the arena is a crash (a panic) rather than
// undefined behavior.
package libc

import (
	"io"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/zigu-os/freestand/fatal"
	"github.com/zigu-os/freestand/format"
	"github.com/zigu-os/freestand/heap"
	"golang.org/x/exp/slog"
)

// errno values reported by this runtime, numbered as on Linux
const (
	ENOMEM = 12
	EINVAL = 22
	ERANGE = 34
)

// Options contains optional settings when creating a Runtime
type Options struct {
	// HeapOptions configures the arena that backs Malloc and friends
	HeapOptions heap.CreateOptions
	// Halt is passed to the fatal handler; see fatal.Options
	Halt fatal.HaltFunc
	// PrintBufferSize is the size of the buffer Printf formats into. 0 selects
	// format.DefaultBufferSize.
	PrintBufferSize int
}

// Runtime is one instance of the C library: an arena, a diagnostic sink and errno
type Runtime struct {
	logger *slog.Logger

	heap      *heap.Heap
	formatter format.Formatter
	printer   *format.Printer
	fatal     *fatal.Handler

	errno atomic.Int32
}

// New reserves the arena and creates a Runtime whose Printf and Abort write to sink. A nil sink
// drops diagnostics.
func New(logger *slog.Logger, sink format.Sink, options Options) (*Runtime, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	h, err := heap.New(logger, options.HeapOptions)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create the runtime heap")
	}

	if sink == nil {
		sink = format.SinkFunc(func([]byte) {})
	}

	runtime := &Runtime{
		logger: logger,
		heap:   h,
		fatal:  fatal.New(logger, sink, fatal.Options{Halt: options.Halt}),
	}
	runtime.formatter = format.Formatter{ResolveString: runtime.resolveString}
	runtime.printer = format.NewPrinter(sink, options.PrintBufferSize, runtime.formatter)

	return runtime, nil
}

// Destroy releases the arena. Every pointer handed out by the runtime becomes invalid.
func (r *Runtime) Destroy() error {
	return r.heap.Destroy()
}

// Heap returns the allocator backing the runtime
func (r *Runtime) Heap() *heap.Heap {
	return r.heap
}

// Errno returns the error number set by the last failing call
func (r *Runtime) Errno() int {
	return int(r.errno.Load())
}

// SetErrno overwrites errno, typically to clear it before a call whose failure is only visible
// through errno
func (r *Runtime) SetErrno(value int) {
	r.errno.Store(int32(value))
}

// Abort writes a diagnostic to the sink and halts
func (r *Runtime) Abort() {
	r.fatal.Abort()
}

// Exit halts. The status has nowhere to go.
func (r *Runtime) Exit(status int) {
	r.fatal.Exit(status)
}

// StackCheckFail is the target of compiler-inserted stack protector checks
func (r *Runtime) StackCheckFail() {
	r.fatal.StackCheckFail()
}

// span returns n bytes of the arena at p. Accesses outside the arena panic, the way a wild pointer
// would fault.
func (r *Runtime) span(p heap.Ptr, n int) []byte {
	memory := r.heap.Memory()
	if p <= heap.Null || n < 0 || int(p) > len(memory) || n > len(memory)-int(p) {
		panic(errors.AssertionFailedf("access of %d bytes at %#x falls outside of the %d byte arena", n, int(p), len(memory)))
	}
	return memory[p : int(p)+n : int(p)+n]
}

// str returns the arena from p to its end. The string primitives stop at the first NUL or, failing
// that, at the end of the arena.
func (r *Runtime) str(p heap.Ptr) []byte {
	memory := r.heap.Memory()
	if p <= heap.Null || int(p) >= len(memory) {
		panic(errors.AssertionFailedf("string access at %#x falls outside of the %d byte arena", int(p), len(memory)))
	}
	return memory[p:]
}

func (r *Runtime) resolveString(addr uint64) ([]byte, bool) {
	memory := r.heap.Memory()
	if addr == 0 || addr >= uint64(len(memory)) {
		return nil, false
	}
	return memory[addr:], true
}
