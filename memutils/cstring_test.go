package memutils_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zigu-os/freestand/memutils"
)

func cstr(s string) []byte {
	return append([]byte(s), 0)
}

func TestStrlen(t *testing.T) {
	require.Equal(t, 0, memutils.Strlen(cstr("")))
	require.Equal(t, 5, memutils.Strlen(cstr("hello")))
	require.Equal(t, 2, memutils.Strlen([]byte{'a', 'b', 0, 'c', 0}))
	// unterminated views stop at the end of the slice
	require.Equal(t, 3, memutils.Strlen([]byte("abc")))

	require.Equal(t, 3, memutils.Strnlen(cstr("hello"), 3))
	require.Equal(t, 5, memutils.Strnlen(cstr("hello"), 10))
}

func TestStrcmp(t *testing.T) {
	require.Equal(t, 0, memutils.Strcmp(cstr("abc"), cstr("abc")))
	require.Less(t, memutils.Strcmp(cstr("abc"), cstr("abd")), 0)
	require.Greater(t, memutils.Strcmp(cstr("abcd"), cstr("abc")), 0)
	require.Equal(t, int('d'), memutils.Strcmp(cstr("abcd"), cstr("abc")))
	// bytes compare unsigned
	require.Greater(t, memutils.Strcmp([]byte{0xff, 0}, cstr("a")), 0)

	require.Equal(t, 0, memutils.Strncmp(cstr("abcX"), cstr("abcY"), 3))
	require.NotEqual(t, 0, memutils.Strncmp(cstr("abcX"), cstr("abcY"), 4))
	require.Equal(t, 0, memutils.Strncmp(cstr("ab"), cstr("ab"), 10))
}

func TestStrchr(t *testing.T) {
	s := cstr("hello")
	require.Equal(t, 2, memutils.Strchr(s, 'l'))
	require.Equal(t, 3, memutils.Strrchr(s, 'l'))
	require.Equal(t, -1, memutils.Strchr(s, 'z'))
	require.Equal(t, -1, memutils.Strrchr(s, 'z'))
	require.Equal(t, 5, memutils.Strchr(s, 0))
	require.Equal(t, 5, memutils.Strrchr(s, 0))
	// bytes after the terminator are not part of the string
	require.Equal(t, -1, memutils.Strchr([]byte{'a', 0, 'b', 0}, 'b'))
}

func TestStrcpyStrcat(t *testing.T) {
	dst := make([]byte, 16)
	require.Equal(t, 3, memutils.Strcpy(dst, cstr("foo")))
	require.Equal(t, 6, memutils.Strcat(dst, cstr("bar")))
	require.Equal(t, cstr("foobar"), dst[:7])

	require.Panics(t, func() {
		memutils.Strcpy(make([]byte, 3), cstr("foo"))
	})
}

func TestStrncpy(t *testing.T) {
	dst := []byte("XXXXXXXX")
	memutils.Strncpy(dst, cstr("ab"), 5)
	require.Equal(t, []byte{'a', 'b', 0, 0, 0, 'X', 'X', 'X'}, dst)

	dst = []byte("XXXXXXXX")
	memutils.Strncpy(dst, cstr("abcdef"), 3)
	require.Equal(t, []byte("abcXXXXX"), dst)
}

func TestStrstr(t *testing.T) {
	require.Equal(t, 0, memutils.Strstr(cstr("haystack"), cstr("")))
	require.Equal(t, 3, memutils.Strstr(cstr("haystack"), cstr("stack")))
	require.Equal(t, -1, memutils.Strstr(cstr("haystack"), cstr("needle")))
	require.Equal(t, -1, memutils.Strstr([]byte{'a', 0, 'b', 'c', 0}, cstr("bc")))
}

func TestByteOps(t *testing.T) {
	buf := []byte("0123456789")
	memutils.Move(buf[2:], buf, 5)
	require.Equal(t, []byte("0101234789"), buf)

	buf = []byte("0123456789")
	memutils.Move(buf, buf[2:], 5)
	require.Equal(t, []byte("2345656789"), buf)

	dst := make([]byte, 4)
	memutils.Copy(dst, []byte("abcdef"), 4)
	require.Equal(t, []byte("abcd"), dst)

	memutils.Set(dst, 'z', 2)
	require.Equal(t, []byte("zzcd"), dst)

	require.Equal(t, 0, memutils.Compare([]byte("abc"), []byte("abd"), 2))
	require.Equal(t, -1, memutils.Compare([]byte("abc"), []byte("abd"), 3))
	require.Greater(t, memutils.Compare([]byte{0x80}, []byte{0x01}, 1), 0)
}

func TestAlign(t *testing.T) {
	require.Equal(t, 16, memutils.AlignUp(1, 16))
	require.Equal(t, 16, memutils.AlignUp(16, 16))
	require.Equal(t, 32, memutils.AlignUp(17, 16))
	require.Equal(t, 0, memutils.AlignUp(0, 16))
	require.Equal(t, 16, memutils.AlignDown(31, 16))
}
