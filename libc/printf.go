package libc

import (
	"github.com/zigu-os/freestand/heap"
)

// Snprintf formats into the size bytes at dst. See format.Vsnprintf for the grammar and the return
// value. %s accepts Go strings as well as arena addresses.
func (r *Runtime) Snprintf(dst heap.Ptr, size int, format string, args ...any) int {
	return r.Vsnprintf(dst, size, format, args)
}

func (r *Runtime) Vsnprintf(dst heap.Ptr, size int, format string, args []any) int {
	var buf []byte
	if size > 0 {
		buf = r.span(dst, size)
	}
	return r.formatter.Vsnprintf(buf, format, args)
}

// Printf formats into a fixed buffer and writes the result to the sink. Output longer than the
// buffer is truncated.
func (r *Runtime) Printf(format string, args ...any) int {
	return r.printer.Printf(format, args...)
}
