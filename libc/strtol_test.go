package libc_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zigu-os/freestand/heap"
	"github.com/zigu-os/freestand/libc"
)

func TestStrtol(t *testing.T) {
	r := newRuntime(t, nil, 4096)

	var end heap.Ptr

	hex := r.CString("0x1F")
	require.Equal(t, int64(31), r.Strtol(hex, &end, 0))
	require.Equal(t, hex+4, end)
	require.Equal(t, byte(0), r.Heap().Memory()[end])

	negative := r.CString("  -42abc")
	require.Equal(t, int64(-42), r.Strtol(negative, &end, 10))
	require.Equal(t, byte('a'), r.Heap().Memory()[end])

	none := r.CString("xyz")
	require.Equal(t, int64(0), r.Strtoll(none, &end, 10))
	require.Equal(t, none, end)

	require.Equal(t, int64(493), r.Strtol(r.CString("0755"), nil, 0))
	require.Zero(t, r.Errno())
}

func TestStrtoulWraps(t *testing.T) {
	r := newRuntime(t, nil, 4096)

	require.Equal(t, uint64(math.MaxUint64), r.Strtoul(r.CString("-1"), nil, 10))
	require.Equal(t, uint64(0xdeadbeef), r.Strtoull(r.CString("deadbeef"), nil, 16))
	require.Zero(t, r.Errno())
}

func TestStrtolErrno(t *testing.T) {
	r := newRuntime(t, nil, 4096)

	var end heap.Ptr
	big := r.CString("99999999999999999999 rest")
	require.Equal(t, int64(math.MaxInt64), r.Strtol(big, &end, 10))
	require.Equal(t, libc.ERANGE, r.Errno())
	require.Equal(t, big+20, end)

	r.SetErrno(0)
	require.Equal(t, uint64(math.MaxUint64), r.Strtoul(big, nil, 10))
	require.Equal(t, libc.ERANGE, r.Errno())

	r.SetErrno(0)
	text := r.CString("10")
	require.Zero(t, r.Strtol(text, &end, 99))
	require.Equal(t, libc.EINVAL, r.Errno())
	require.Equal(t, text, end)
}
