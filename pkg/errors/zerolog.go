package errors

import (
	"github.com/rs/zerolog"
)

// ZerologHandler is a Handler that writes structured events to a zerolog
// logger. Warnings are logged at warn level, errors at error level and
// panics at error level with the stack attached.
type ZerologHandler struct {
	Logger zerolog.Logger
	// Traces attaches component traces to warning events.
	Traces bool
}

// NewZerologHandler wraps logger.
func NewZerologHandler(logger zerolog.Logger) *ZerologHandler {
	return &ZerologHandler{Logger: logger}
}

// HandleError logs a DriftError.
func (h *ZerologHandler) HandleError(err *DriftError) {
	if err == nil {
		return
	}
	ev := h.Logger.Error().
		Str("op", err.Op).
		Str("kind", err.Kind.String()).
		Err(err.Err)
	if err.Component != "" {
		ev = ev.Str("component", err.Component)
	}
	if err.StackTrace != "" {
		ev = ev.Str("stack", err.StackTrace)
	}
	ev.Msg("drift error")
}

// HandlePanic logs a PanicError.
func (h *ZerologHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	h.Logger.Error().
		Str("op", err.Op).
		Interface("value", err.Value).
		Str("stack", err.StackTrace).
		Msg("drift panic")
}

// HandleWarning logs a Warning.
func (h *ZerologHandler) HandleWarning(w *Warning) {
	if w == nil {
		return
	}
	ev := h.Logger.Warn().
		Str("op", w.Op).
		Str("kind", w.Kind.String())
	if w.Component != "" {
		ev = ev.Str("component", w.Component)
	}
	if h.Traces && w.Trace != "" {
		ev = ev.Str("trace", w.Trace)
	}
	ev.Msg(w.Message)
}
