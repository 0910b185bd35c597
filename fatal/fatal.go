// Package fatal implements the terminal paths of the runtime: abort, exit and stack-protection
// failure. None of them return to the caller.
package fatal

import (
	"io"

	"github.com/zigu-os/freestand/format"
	"golang.org/x/exp/slog"
)

// AbortMessage is written to the sink before an abort halts
const AbortMessage = "abort() called\n"

// HaltFunc stops the execution context for good
type HaltFunc func()

// Options contains optional settings when creating a Handler
type Options struct {
	// Halt replaces the default halt, which parks the calling goroutine forever. If Halt returns,
	// the calling goroutine is parked anyway. Tests typically panic here to regain control.
	Halt HaltFunc
}

// Handler owns the diagnostic sink and the halt behavior for fatal conditions
type Handler struct {
	logger *slog.Logger
	sink   format.Sink
	halt   HaltFunc
}

// New creates a Handler that writes diagnostics to sink. A nil sink drops them and a nil logger
// discards log output.
func New(logger *slog.Logger, sink format.Sink, options Options) *Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Handler{
		logger: logger,
		sink:   sink,
		halt:   options.Halt,
	}
}

// Abort writes AbortMessage to the sink and halts
func (h *Handler) Abort() {
	h.logger.Error("Handler::Abort")
	h.write(AbortMessage)
	h.stop()
}

// Exit halts. There is no process to report status to, so it is only logged.
func (h *Handler) Exit(status int) {
	h.logger.Info("Handler::Exit", slog.Int("Status", status))
	h.stop()
}

// StackCheckFail is called when a stack protector detects a smashed canary. It behaves as Abort.
func (h *Handler) StackCheckFail() {
	h.logger.Error("Handler::StackCheckFail")
	h.write(AbortMessage)
	h.stop()
}

func (h *Handler) write(message string) {
	if h.sink != nil {
		h.sink.WriteBytes([]byte(message))
	}
}

func (h *Handler) stop() {
	if h.halt != nil {
		h.halt()
	}

	select {}
}
