package errors

import (
	"os"

	"github.com/rs/zerolog"
)

// LogHandler is an ErrorHandler that writes structured log events.
type LogHandler struct {
	logger zerolog.Logger
	// Verbose enables detailed output including stack traces.
	Verbose bool
}

// NewLogHandler creates a LogHandler writing to stderr.
func NewLogHandler() *LogHandler {
	return &LogHandler{
		logger: zerolog.New(os.Stderr).With().Timestamp().Logger(),
	}
}

// NewLogHandlerWithLogger creates a LogHandler using the given logger.
func NewLogHandlerWithLogger(logger zerolog.Logger) *LogHandler {
	return &LogHandler{logger: logger}
}

// HandleError logs a TetherError.
func (h *LogHandler) HandleError(err *TetherError) {
	if err == nil {
		return
	}
	ev := h.logger.Error().
		Str("op", err.Op).
		Str("kind", err.Kind.String()).
		Err(err.Err)
	if err.Owner != "" {
		ev = ev.Str("owner", err.Owner)
	}
	if h.Verbose && err.StackTrace != "" {
		ev = ev.Str("stack", err.StackTrace)
	}
	ev.Msg("tether error")
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	ev := h.logger.Error().
		Str("op", err.Op).
		Any("value", err.Value)
	if h.Verbose && err.StackTrace != "" {
		ev = ev.Str("stack", err.StackTrace)
	}
	ev.Msg("recovered panic")
}
