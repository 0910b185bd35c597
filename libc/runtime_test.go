package libc_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zigu-os/freestand/format"
	mock_format "github.com/zigu-os/freestand/format/mocks"
	"github.com/zigu-os/freestand/heap"
	"github.com/zigu-os/freestand/libc"
	"go.uber.org/mock/gomock"
)

type halted struct{}

func newRuntime(t *testing.T, sink format.Sink, arenaSize int) *libc.Runtime {
	r, err := libc.New(nil, sink, libc.Options{
		HeapOptions: heap.CreateOptions{ArenaSize: arenaSize},
		Halt:        func() { panic(halted{}) },
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, r.Destroy())
	})
	return r
}

func TestNewRejectsTinyArena(t *testing.T) {
	_, err := libc.New(nil, nil, libc.Options{HeapOptions: heap.CreateOptions{ArenaSize: 16}})
	require.Error(t, err)
}

func TestMallocFree(t *testing.T) {
	r := newRuntime(t, nil, 4096)

	p := r.Malloc(100)
	require.NotEqual(t, heap.Null, p)
	require.Zero(t, int(p)%16)

	r.Free(p)
	r.Free(p)
	r.Free(heap.Null)
	r.Free(p + 8)

	q := r.Malloc(100)
	require.Equal(t, p, q)
	require.NoError(t, r.Heap().Validate())
}

func TestMallocExhaustionSetsErrno(t *testing.T) {
	r := newRuntime(t, nil, 4096)

	require.Equal(t, heap.Null, r.Malloc(1<<20))
	require.Equal(t, libc.ENOMEM, r.Errno())

	r.SetErrno(0)
	require.Equal(t, heap.Null, r.Calloc(1<<40, 1<<40))
	require.Equal(t, libc.ENOMEM, r.Errno())
}

func TestRealloc(t *testing.T) {
	r := newRuntime(t, nil, 4096)

	p := r.CString("hello")
	require.Equal(t, p, r.Realloc(p, 16))

	q := r.Realloc(p, 64)
	require.NotEqual(t, p, q)
	require.Equal(t, "hello", r.GoString(q))

	// Growth that cannot be satisfied leaves the block alone
	require.Equal(t, heap.Null, r.Realloc(q, 1<<20))
	require.Equal(t, libc.ENOMEM, r.Errno())
	require.Equal(t, "hello", r.GoString(q))

	require.Equal(t, heap.Null, r.Realloc(q, 0))
	require.True(t, r.Heap().IsEmpty())

	fresh := r.Realloc(heap.Null, 10)
	require.NotEqual(t, heap.Null, fresh)
}

func TestCalloc(t *testing.T) {
	r := newRuntime(t, nil, 4096)

	dirty := r.Malloc(64)
	r.Memset(dirty, 0xAB, 64)
	r.Free(dirty)

	p := r.Calloc(8, 8)
	require.Equal(t, dirty, p)

	zero := r.Calloc(1, 64)
	require.Zero(t, r.Memcmp(p, zero, 64))

	payload, err := r.Heap().Payload(p)
	require.NoError(t, err)
	require.Equal(t, make([]byte, 64), payload)
}

func TestAbortWritesToSink(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mock_format.NewMockSink(ctrl)
	sink.EXPECT().WriteBytes([]byte("abort() called\n")).Times(2)

	r := newRuntime(t, sink, 4096)
	require.PanicsWithValue(t, halted{}, r.Abort)
	require.PanicsWithValue(t, halted{}, r.StackCheckFail)
	require.PanicsWithValue(t, halted{}, func() { r.Exit(1) })
}

func TestMath(t *testing.T) {
	r := newRuntime(t, nil, 4096)

	require.Equal(t, -2.0, r.Floor(-1.5))
	require.Equal(t, float32(1), r.Floorf(1.9))
	require.Equal(t, 2.0, r.Ceil(1.1))
	require.Equal(t, 1.0, r.Fmod(7, 3))
	require.Equal(t, 3.0, r.Sqrt(9))
	require.Equal(t, 1024.0, r.Pow(2, 10))
	require.Equal(t, 0.0, r.Log(1))
	require.Equal(t, 1.0, r.Exp(0))
	require.Equal(t, 12.0, r.Ldexp(3, 2))

	var exp int
	require.Equal(t, 0.5, r.Frexp(8, &exp))
	require.Equal(t, 4, exp)

	var integral float64
	require.Equal(t, -0.5, r.Modf(-3.5, &integral))
	require.Equal(t, -3.0, integral)
}
