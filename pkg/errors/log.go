package errors

import (
	"fmt"
	"io"
	"os"
)

// LogHandler is a Handler that writes errors and warnings to stderr.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
	// Out overrides the destination; nil means os.Stderr.
	Out io.Writer
}

func (h *LogHandler) out() io.Writer {
	if h.Out != nil {
		return h.Out
	}
	return os.Stderr
}

// HandleError logs a DriftError.
func (h *LogHandler) HandleError(err *DriftError) {
	if err == nil {
		return
	}
	w := h.out()
	if h.Verbose {
		fmt.Fprintf(w, "[drift error] %s [%s]", err.Op, err.Kind)
		if err.Component != "" {
			fmt.Fprintf(w, " component=%s", err.Component)
		}
		fmt.Fprintf(w, ": %v\n", err.Err)
		if err.StackTrace != "" {
			fmt.Fprintf(w, "Stack trace:\n%s\n", err.StackTrace)
		}
	} else {
		fmt.Fprintf(w, "[drift error] %s: %v\n", err.Op, err.Err)
	}
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	w := h.out()
	if err.Op != "" {
		fmt.Fprintf(w, "[drift panic] %s: %v\n", err.Op, err.Value)
	} else {
		fmt.Fprintf(w, "[drift panic] %v\n", err.Value)
	}
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintf(w, "Stack trace:\n%s\n", err.StackTrace)
	}
}

// HandleWarning logs a Warning. The component trace is only written in
// verbose mode.
func (h *LogHandler) HandleWarning(warn *Warning) {
	if warn == nil {
		return
	}
	w := h.out()
	fmt.Fprintf(w, "[drift warn]: %s\n", warn.Message)
	if h.Verbose && warn.Trace != "" {
		fmt.Fprintf(w, "\n%s\n", warn.Trace)
	}
}
