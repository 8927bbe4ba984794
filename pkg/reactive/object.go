package reactive

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"slices"
	"sort"
)

var (
	// ErrNotConfigurable is returned when redefining a locked property.
	ErrNotConfigurable = errors.New("property is not configurable")
	// ErrUndefinedProperty is returned when writing a property that was never defined.
	ErrUndefinedProperty = errors.New("property is not defined")
)

// WatchFunc is called after a property changes.
type WatchFunc func(newValue, oldValue any)

// Property is a single reactive slot on an Object.
type Property struct {
	name         string
	value        any
	customSetter func()
	shallow      bool
	locked       bool
	watchers     []*watcher
}

type watcher struct {
	fn WatchFunc
}

// Name returns the property name.
func (p *Property) Name() string { return p.name }

// Locked reports whether the property rejects redefinition.
func (p *Property) Locked() bool { return p.locked }

// Shallow reports whether assigned values skip deep conversion.
func (p *Property) Shallow() bool { return p.shallow }

// HasCustomSetter reports whether writes invoke a setter callback.
func (p *Property) HasCustomSetter() bool { return p.customSetter != nil }

// Option configures a property definition.
type Option func(*Property)

// WithCustomSetter registers fn to run before every write that changes the
// stored value. fn cannot veto the write.
func WithCustomSetter(fn func()) Option {
	return func(p *Property) {
		p.customSetter = fn
	}
}

// Shallow disables deep conversion of the property's values.
func Shallow() Option {
	return func(p *Property) {
		p.shallow = true
	}
}

// Locked makes the property non-configurable: later definitions under the
// same name fail with ErrNotConfigurable.
func Locked() Option {
	return func(p *Property) {
		p.locked = true
	}
}

// Object is a set of named reactive properties.
//
// Object is NOT thread-safe. Access it from the goroutine that owns the
// component tree.
type Object struct {
	runtime *Runtime
	props   map[string]*Property
	order   []string
}

// DefineReactive defines name on obj with an initial value.
//
// Unless the property is shallow, value is passed through [Runtime.Observe],
// so with conversion suppressed the stored value is exactly value. An
// existing configurable property is replaced and keeps its watchers.
func (r *Runtime) DefineReactive(obj *Object, name string, value any, opts ...Option) error {
	if obj == nil {
		return fmt.Errorf("define %q: nil object", name)
	}
	existing := obj.props[name]
	if existing != nil && existing.locked {
		return fmt.Errorf("define %q: %w", name, ErrNotConfigurable)
	}

	p := &Property{name: name}
	for _, opt := range opts {
		opt(p)
	}
	if p.shallow {
		p.value = value
	} else {
		p.value = r.Observe(value)
	}

	if existing != nil {
		p.watchers = existing.watchers
	} else {
		obj.order = append(obj.order, name)
	}
	obj.props[name] = p

	if r.onDefine != nil {
		r.onDefine(obj, name)
	}
	return nil
}

// Runtime returns the runtime that created the object.
func (o *Object) Runtime() *Runtime {
	return o.runtime
}

// Has reports whether name is defined.
func (o *Object) Has(name string) bool {
	_, ok := o.props[name]
	return ok
}

// Property returns the property definition for name.
func (o *Object) Property(name string) (*Property, bool) {
	p, ok := o.props[name]
	return p, ok
}

// Get returns the current value of name.
func (o *Object) Get(name string) (any, bool) {
	p, ok := o.props[name]
	if !ok {
		return nil, false
	}
	return p.value, true
}

// Set writes name. Writing an identical value is a no-op. Otherwise the
// custom setter (if any) runs first, the value is stored (deeply converted
// under the runtime's current policy unless shallow) and watchers are
// notified in registration order.
func (o *Object) Set(name string, value any) error {
	p, ok := o.props[name]
	if !ok {
		return fmt.Errorf("set %q: %w", name, ErrUndefinedProperty)
	}
	if sameValue(p.value, value) {
		return nil
	}
	if p.customSetter != nil {
		p.customSetter()
	}
	old := p.value
	if p.shallow {
		p.value = value
	} else {
		p.value = o.runtime.Observe(value)
	}
	for _, w := range slices.Clone(p.watchers) {
		w.fn(p.value, old)
	}
	return nil
}

// Watch registers fn to be called after name changes. It returns a function
// that removes the watcher.
func (o *Object) Watch(name string, fn WatchFunc) (func(), error) {
	p, ok := o.props[name]
	if !ok {
		return nil, fmt.Errorf("watch %q: %w", name, ErrUndefinedProperty)
	}
	w := &watcher{fn: fn}
	p.watchers = append(p.watchers, w)
	return func() {
		p.watchers = slices.DeleteFunc(p.watchers, func(c *watcher) bool { return c == w })
	}, nil
}

// Keys returns property names in definition order.
func (o *Object) Keys() []string {
	return slices.Clone(o.order)
}

// Len returns the number of defined properties.
func (o *Object) Len() int {
	return len(o.order)
}

// ToMap returns a snapshot of the object. Nested objects are expanded.
func (o *Object) ToMap() map[string]any {
	out := make(map[string]any, len(o.order))
	for _, name := range o.order {
		out[name] = Raw(o.props[name].value)
	}
	return out
}

// Raw returns v with reactive objects expanded into plain maps.
func Raw(v any) any {
	switch t := v.(type) {
	case *Object:
		return t.ToMap()
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = Raw(item)
		}
		return out
	default:
		return v
	}
}

// sameValue reports whether a write of b over a would be a no-op.
// NaN equals NaN; reference kinds compare by identity.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Float32, reflect.Float64:
		fa, fb := va.Float(), vb.Float()
		return fa == fb || (math.IsNaN(fa) && math.IsNaN(fb))
	case reflect.Map, reflect.Func, reflect.Chan, reflect.Pointer, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}
	if va.Type().Comparable() {
		return safeEqual(a, b)
	}
	return false
}

// safeEqual compares two values of a comparable type. Structs holding
// interface fields with incomparable dynamic values still panic on ==.
func safeEqual(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
