package format_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zigu-os/freestand/format"
	mock_format "github.com/zigu-os/freestand/format/mocks"
	"go.uber.org/mock/gomock"
)

func TestPrintfWritesOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mock_format.NewMockSink(ctrl)

	sink.EXPECT().WriteBytes([]byte("value=42\n")).Times(1)

	printer := format.NewPrinter(sink, 0, format.Formatter{})
	require.Equal(t, 9, printer.Printf("value=%d\n", 42))
}

func TestPrintfTruncatesToBuffer(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mock_format.NewMockSink(ctrl)

	long := strings.Repeat("x", 300)
	sink.EXPECT().WriteBytes([]byte(long[:format.DefaultBufferSize-1])).Times(1)

	printer := format.NewPrinter(sink, 0, format.Formatter{})
	require.Equal(t, 302, printer.Printf("%s!\n", long))
}

func TestPrintfSmallBuffer(t *testing.T) {
	var out bytes.Buffer
	printer := format.NewPrinter(format.WriterSink{Writer: &out}, 8, format.Formatter{})

	require.Equal(t, 3, printer.Printf("%x", 0xabc))
	require.Equal(t, 10, printer.Printf("%d", 1234567890))
	require.Equal(t, "abc1234567", out.String())
}

func TestSinkFunc(t *testing.T) {
	var chunks []string
	sink := format.SinkFunc(func(data []byte) {
		chunks = append(chunks, string(data))
	})

	printer := format.NewPrinter(sink, 16, format.Formatter{})
	printer.Printf("a")
	printer.Printf("%c%c", 'b', 'c')

	require.Equal(t, []string{"a", "bc"}, chunks)
}
