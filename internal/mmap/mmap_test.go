package mmap_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zigu-os/freestand/internal/mmap"
)

func TestReserveRelease(t *testing.T) {
	if !mmap.Supported {
		t.Skip("anonymous mappings are not supported on this platform")
	}

	data, err := mmap.Reserve(1 << 16)
	require.NoError(t, err)
	require.Len(t, data, 1<<16)

	require.Equal(t, make([]byte, 1<<16), data)

	data[0] = 0xAB
	data[len(data)-1] = 0xCD

	require.NoError(t, mmap.Release(data))
}
