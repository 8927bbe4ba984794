package core

import (
	"fmt"
	"slices"
	"sync"

	"github.com/go-drift/provide/pkg/errors"
	"github.com/go-drift/provide/pkg/reactive"
)

// ErrConstructionInProgress is returned when a mount starts while the same
// owner is still constructing another component.
var ErrConstructionInProgress = errors.New("component construction already in progress")

// Owner constructs component trees. Each owner carries its own reactive
// runtime, so owners may construct trees on different goroutines. A single
// owner constructs one tree at a time.
type Owner struct {
	runtime     *reactive.Runtime
	handler     errors.Handler
	warnOnWrite bool

	mu      sync.Mutex
	nextUID int
}

// OwnerOption configures an Owner.
type OwnerOption func(*Owner)

// WithDebug sets whether writes to injected properties report warnings.
func WithDebug(debug bool) OwnerOption {
	return func(o *Owner) {
		o.warnOnWrite = debug
	}
}

// WithHandler routes the owner's warnings and errors to h instead of the
// global handler.
func WithHandler(h errors.Handler) OwnerOption {
	return func(o *Owner) {
		o.handler = h
	}
}

// WithRuntime uses rt instead of a fresh runtime.
func WithRuntime(rt *reactive.Runtime) OwnerOption {
	return func(o *Owner) {
		o.runtime = rt
	}
}

// NewOwner creates an Owner. Debug behavior defaults to [DebugMode].
func NewOwner(opts ...OwnerOption) *Owner {
	o := &Owner{warnOnWrite: DebugMode}
	for _, opt := range opts {
		opt(o)
	}
	if o.runtime == nil {
		o.runtime = reactive.NewRuntime()
	}
	return o
}

// Runtime returns the owner's reactive runtime.
func (o *Owner) Runtime() *reactive.Runtime {
	return o.runtime
}

// Debug reports whether writes to injected properties report warnings.
func (o *Owner) Debug() bool {
	return o.warnOnWrite
}

// Mount constructs a tree from opts and returns its root.
func (o *Owner) Mount(opts *Options) (*Component, error) {
	return o.mount(nil, opts)
}

// MountChild constructs a subtree from opts under parent. The parent must
// belong to this owner.
func (o *Owner) MountChild(parent *Component, opts *Options) (*Component, error) {
	if parent == nil {
		return nil, fmt.Errorf("mount child: nil parent")
	}
	if parent.owner != o {
		return nil, fmt.Errorf("mount child: parent %s belongs to another owner", FormatComponentName(parent))
	}
	return o.mount(parent, opts)
}

func (o *Owner) mount(parent *Component, opts *Options) (*Component, error) {
	if opts == nil {
		return nil, fmt.Errorf("mount: nil options")
	}
	// Construction toggles the runtime's conversion flag, so overlapping
	// constructions on one owner would corrupt it.
	if !o.mu.TryLock() {
		return nil, &errors.DriftError{
			Op:   "core.Mount",
			Kind: errors.KindLifecycle,
			Err:  ErrConstructionInProgress,
		}
	}
	defer o.mu.Unlock()

	c, err := o.construct(parent, opts)
	if err != nil {
		errors.ReportTo(o.handler, asDriftError(err))
		return nil, err
	}
	if parent != nil {
		parent.children = append(parent.children, c)
	}
	return c, nil
}

// construct builds c and its subtree depth-first. The order within one
// component is: link, BeforeCreate, injections, data, provide, Created,
// children.
func (o *Owner) construct(parent *Component, opts *Options) (*Component, error) {
	o.nextUID++
	c := &Component{
		uid:     o.nextUID,
		options: opts,
		owner:   o,
		parent:  parent,
		props:   o.runtime.NewObject(),
	}
	if parent != nil {
		c.root = parent.Root()
		c.depth = parent.depth + 1
	}

	if opts.BeforeCreate != nil {
		opts.BeforeCreate(c)
	}
	if err := InitInjections(c); err != nil {
		return nil, err
	}
	if err := initData(c); err != nil {
		return nil, err
	}
	if err := InitProvide(c); err != nil {
		return nil, err
	}
	if opts.Created != nil {
		opts.Created(c)
	}

	for _, childOpts := range opts.Children {
		if childOpts == nil {
			continue
		}
		child, err := o.construct(c, childOpts)
		if err != nil {
			return nil, err
		}
		c.children = append(c.children, child)
	}
	return c, nil
}

// ErrDataShadowsInjection is returned when a component declares data under
// the name of one of its injections.
var ErrDataShadowsInjection = errors.New("data property shadows an injection")

// initData defines the component's own state. Unlike injections, data
// values are deeply converted.
func initData(c *Component) error {
	if c.options.Data == nil {
		return nil
	}
	data := c.options.Data(c)
	for _, name := range sortedNames(data) {
		if slices.Contains(c.injected, name) {
			return &errors.DriftError{
				Op:        "core.initData",
				Kind:      errors.KindLifecycle,
				Component: FormatComponentName(c),
				Err:       fmt.Errorf("%w: %q", ErrDataShadowsInjection, name),
			}
		}
		if err := c.owner.runtime.DefineReactive(c.props, name, data[name]); err != nil {
			return &errors.DriftError{
				Op:        "core.initData",
				Kind:      errors.KindLifecycle,
				Component: FormatComponentName(c),
				Err:       err,
			}
		}
	}
	return nil
}

func asDriftError(err error) *errors.DriftError {
	var de *errors.DriftError
	if errors.As(err, &de) {
		return de
	}
	return &errors.DriftError{Op: "core.Mount", Kind: errors.KindLifecycle, Err: err}
}
