package libc_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	mock_format "github.com/zigu-os/freestand/format/mocks"
	"github.com/zigu-os/freestand/heap"
	"go.uber.org/mock/gomock"
)

func TestSnprintfIntoArena(t *testing.T) {
	r := newRuntime(t, nil, 4096)

	buf := r.Malloc(16)

	require.Equal(t, 5, r.Snprintf(buf, 5, "%d", 12345))
	require.Equal(t, "1234", r.GoString(buf))

	require.Equal(t, 5, r.Snprintf(buf, 16, "%05d", 42))
	require.Equal(t, "00042", r.GoString(buf))

	require.Equal(t, 6, r.Snprintf(buf, 16, "%s", nil))
	require.Equal(t, "(null)", r.GoString(buf))

	require.Equal(t, 3, r.Snprintf(heap.Null, 0, "abc"))
}

func TestSnprintfResolvesArenaStrings(t *testing.T) {
	r := newRuntime(t, nil, 4096)

	name := r.CString("arena")
	buf := r.Malloc(32)

	n := r.Vsnprintf(buf, 32, "[%s|%s|%s]", []any{name, "go", heap.Null})
	require.Equal(t, "[arena|go|(null)]", r.GoString(buf))
	require.Equal(t, 17, n)
}

func TestPrintf(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mock_format.NewMockSink(ctrl)

	gomock.InOrder(
		sink.EXPECT().WriteBytes([]byte("x=ff\n")),
		sink.EXPECT().WriteBytes([]byte("hello\n")),
	)

	r := newRuntime(t, sink, 4096)
	require.Equal(t, 5, r.Printf("x=%x\n", 255))
	require.Equal(t, 6, r.Printf("%s\n", r.CString("hello")))
}
