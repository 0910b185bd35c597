package format

import (
	"io"
	"sync"
)

//go:generate mockgen -source printer.go -destination ./mocks/sink.go -package mock_format

// Sink is the diagnostic byte channel that formatted output is delivered to, such as a serial port.
// WriteBytes has no failure path: a sink that cannot deliver drops the bytes.
type Sink interface {
	WriteBytes(data []byte)
}

// SinkFunc adapts an ordinary function to the Sink interface
type SinkFunc func(data []byte)

func (f SinkFunc) WriteBytes(data []byte) {
	f(data)
}

// WriterSink delivers bytes to an io.Writer, discarding write errors
type WriterSink struct {
	Writer io.Writer
}

func (s WriterSink) WriteBytes(data []byte) {
	_, _ = s.Writer.Write(data)
}

// DefaultBufferSize is the size of the buffer Printf formats into when none is specified
const DefaultBufferSize = 256

// Printer formats text into a fixed buffer and forwards it to a Sink
type Printer struct {
	formatter Formatter
	sink      Sink

	mutex  sync.Mutex
	buffer []byte
}

// NewPrinter creates a Printer writing to sink. A bufferSize of 0 selects DefaultBufferSize.
func NewPrinter(sink Sink, bufferSize int, formatter Formatter) *Printer {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	return &Printer{
		formatter: formatter,
		sink:      sink,
		buffer:    make([]byte, bufferSize),
	}
}

// Printf formats args and writes the result to the sink in a single call. Output that does not fit
// in the buffer, terminator included, is silently truncated. The return value is the untruncated
// length, as with Vsnprintf.
func (p *Printer) Printf(format string, args ...any) int {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	length := p.formatter.Vsnprintf(p.buffer, format, args)

	n := length
	if n >= len(p.buffer) {
		n = len(p.buffer) - 1
	}
	p.sink.WriteBytes(p.buffer[:n])

	return length
}
