package libc

import (
	"github.com/cockroachdb/errors"
	"github.com/zigu-os/freestand/cstrconv"
	"github.com/zigu-os/freestand/heap"
	"golang.org/x/exp/slog"
)

// Strtol parses a long from the string at s. If endptr is not nil it receives the address of the
// first byte that was not consumed, which is s itself when there were no digits. Out of range
// values saturate and set errno to ERANGE; an invalid base sets EINVAL.
func (r *Runtime) Strtol(s heap.Ptr, endptr *heap.Ptr, base int) int64 {
	value, consumed, err := cstrconv.ParseInt(r.str(s), base)
	r.finishParse("Runtime::Strtol", s, endptr, consumed, err)
	return value
}

// Strtoll is Strtol: long and long long are both 64 bits here
func (r *Runtime) Strtoll(s heap.Ptr, endptr *heap.Ptr, base int) int64 {
	return r.Strtol(s, endptr, base)
}

// Strtoul parses an unsigned long. A leading '-' negates the result in unsigned arithmetic.
func (r *Runtime) Strtoul(s heap.Ptr, endptr *heap.Ptr, base int) uint64 {
	value, consumed, err := cstrconv.ParseUint(r.str(s), base)
	r.finishParse("Runtime::Strtoul", s, endptr, consumed, err)
	return value
}

// Strtoull is Strtoul: unsigned long and unsigned long long are both 64 bits here
func (r *Runtime) Strtoull(s heap.Ptr, endptr *heap.Ptr, base int) uint64 {
	return r.Strtoul(s, endptr, base)
}

func (r *Runtime) finishParse(method string, s heap.Ptr, endptr *heap.Ptr, consumed int, err error) {
	if endptr != nil {
		*endptr = s + heap.Ptr(consumed)
	}

	switch {
	case err == nil:
	case errors.Is(err, cstrconv.ErrRange):
		r.SetErrno(ERANGE)
	case errors.Is(err, cstrconv.ErrInvalidBase):
		r.SetErrno(EINVAL)
	}

	if err != nil {
		r.logger.Debug("    "+method+" FAILED", slog.Int("Ptr", int(s)), slog.Any("Error", err))
	}
}
