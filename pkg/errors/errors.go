// Package errors provides structured error and warning reporting for the
// provide/inject runtime.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfig indicates an invalid configuration or manifest.
	KindConfig
	// KindParsing indicates a manifest decoding failure.
	KindParsing
	// KindProvide indicates a provide source failed to evaluate.
	KindProvide
	// KindInject indicates an injection could not be resolved or installed.
	KindInject
	// KindLifecycle indicates a component construction failure.
	KindLifecycle
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindParsing:
		return "parsing"
	case KindProvide:
		return "provide"
	case KindInject:
		return "inject"
	case KindLifecycle:
		return "lifecycle"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// DriftError represents a structured error raised while constructing a
// component tree.
type DriftError struct {
	// Op is the operation that failed (e.g., "core.InitProvide").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Component is the formatted name of the component involved, if any.
	Component string
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *DriftError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("%s [%s] component=%s: %v", e.Op, e.Kind, e.Component, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *DriftError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "cmd.resolve").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ParseError represents a failure to decode a manifest.
type ParseError struct {
	// Path is the file being decoded, empty for in-memory data.
	Path string
	// Format is the manifest format (yaml, toml, hcl).
	Format string
	// Err is the decoder error.
	Err error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to parse %s manifest: %v", e.Format, e.Err)
	}
	return fmt.Sprintf("failed to parse %s manifest %s: %v", e.Format, e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Warning is a non-fatal diagnostic. Warnings never interrupt construction.
type Warning struct {
	// Op is the operation that raised the warning (e.g., "core.ResolveInject").
	Op string
	// Kind categorizes the warning.
	Kind ErrorKind
	// Message is the human readable diagnostic.
	Message string
	// Component is the formatted name of the component involved, if any.
	Component string
	// Trace is the component ancestry trace, if any.
	Trace string
	// Timestamp is when the warning was raised.
	Timestamp time.Time
}

func (w *Warning) String() string {
	if w.Trace != "" {
		return w.Message + "\n\n" + w.Trace
	}
	return w.Message
}

// Handler receives errors and warnings reported by the runtime.
type Handler interface {
	// HandleError is called when an error is reported.
	HandleError(err *DriftError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
	// HandleWarning is called for every non-fatal diagnostic.
	HandleWarning(w *Warning)
}

// New is errors.New from the standard library, re-exported so callers of
// this package do not need both imports.
func New(text string) error {
	return errors.New(text)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
