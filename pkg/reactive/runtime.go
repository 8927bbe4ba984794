// Package reactive implements observable properties for component instances.
//
// A [Runtime] owns the deep-conversion policy for one construction scope.
// While conversion is allowed, plain maps assigned to reactive properties are
// recursively wrapped into [Object] values so nested writes are observable.
// Installing values that are owned elsewhere (for example values injected
// from an ancestor) is done with conversion suppressed:
//
//	restore := rt.SuppressConversion()
//	defer restore()
//	rt.DefineReactive(obj, "theme", theme)
//
// A Runtime is not safe for concurrent construction. Give each construction
// scope its own Runtime instead of sharing one.
package reactive

import (
	"sync"
)

// Runtime holds the conversion policy and instrumentation shared by the
// objects it creates.
type Runtime struct {
	mu            sync.Mutex
	shouldConvert bool
	onDefine      func(obj *Object, name string)
}

// RuntimeOption configures a Runtime.
type RuntimeOption func(*Runtime)

// WithDefineHook registers fn to be called every time a property is defined.
func WithDefineHook(fn func(obj *Object, name string)) RuntimeOption {
	return func(r *Runtime) {
		r.onDefine = fn
	}
}

// NewRuntime creates a Runtime with conversion allowed.
func NewRuntime(opts ...RuntimeOption) *Runtime {
	r := &Runtime{shouldConvert: true}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ShouldConvert reports whether newly defined or assigned values are deeply
// converted into observables.
func (r *Runtime) ShouldConvert() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.shouldConvert
}

// SetShouldConvert sets the conversion flag directly. Prefer
// SuppressConversion, which restores the previous value.
func (r *Runtime) SetShouldConvert(convert bool) {
	r.mu.Lock()
	r.shouldConvert = convert
	r.mu.Unlock()
}

// SuppressConversion disables deep conversion and returns a function that
// restores the flag to the value it had before the call. The restore
// function is idempotent.
func (r *Runtime) SuppressConversion() (restore func()) {
	r.mu.Lock()
	prev := r.shouldConvert
	r.shouldConvert = false
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.SetShouldConvert(prev)
		})
	}
}

// NewObject creates an empty Object bound to this runtime.
func (r *Runtime) NewObject() *Object {
	return &Object{
		runtime: r,
		props:   make(map[string]*Property),
	}
}

// Observe returns the observable form of value under the current policy.
//
// Maps with string keys become *Object with every entry defined reactively.
// Elements of []any are observed in place. An *Object is returned as is, as
// is any other value. With conversion suppressed, value is returned unchanged.
func (r *Runtime) Observe(value any) any {
	if !r.ShouldConvert() {
		return value
	}
	return r.observe(value)
}

func (r *Runtime) observe(value any) any {
	switch v := value.(type) {
	case *Object:
		return v
	case map[string]any:
		obj := r.NewObject()
		for _, key := range sortedKeys(v) {
			// Defining on a fresh object cannot fail.
			_ = r.DefineReactive(obj, key, v[key])
		}
		return obj
	case []any:
		for i, item := range v {
			v[i] = r.observe(item)
		}
		return v
	default:
		return value
	}
}
