package testing

import (
	"sync"

	"github.com/go-drift/provide/pkg/errors"
)

// Recorder is an errors.Handler that keeps everything it receives.
// It is safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	warnings []*errors.Warning
	errs     []*errors.DriftError
	panics   []*errors.PanicError
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// HandleError implements errors.Handler.
func (r *Recorder) HandleError(err *errors.DriftError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

// HandlePanic implements errors.Handler.
func (r *Recorder) HandlePanic(err *errors.PanicError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.panics = append(r.panics, err)
}

// HandleWarning implements errors.Handler.
func (r *Recorder) HandleWarning(w *errors.Warning) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, w)
}

// Warnings returns the recorded warnings in arrival order.
func (r *Recorder) Warnings() []*errors.Warning {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*errors.Warning(nil), r.warnings...)
}

// Messages returns the message of each recorded warning.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.warnings))
	for i, w := range r.warnings {
		out[i] = w.Message
	}
	return out
}

// Errors returns the recorded errors.
func (r *Recorder) Errors() []*errors.DriftError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*errors.DriftError(nil), r.errs...)
}

// Panics returns the recorded panics.
func (r *Recorder) Panics() []*errors.PanicError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*errors.PanicError(nil), r.panics...)
}

// Reset discards everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings, r.errs, r.panics = nil, nil, nil
}
