package core

import (
	"github.com/go-drift/provide/pkg/reactive"
)

// ProvideSource produces the values a component provides to its subtree.
// It is either a [StaticProvide] map or a [ProvideFunc].
type ProvideSource interface {
	provide(c *Component) (Provided, error)
}

// StaticProvide provides a fixed map.
type StaticProvide Provided

func (s StaticProvide) provide(*Component) (Provided, error) {
	if s == nil {
		return Provided{}, nil
	}
	return Provided(s), nil
}

// ProvideFunc computes the provided map with the component as context. It
// runs once, after the component's injections and data are installed, so it
// may read (and re-provide) them.
type ProvideFunc func(c *Component) (Provided, error)

func (f ProvideFunc) provide(c *Component) (Provided, error) {
	return f(c)
}

// Options declares a component.
type Options struct {
	// Name identifies the component in diagnostics.
	Name string
	// Provide is the publish source, nil when the component provides nothing.
	Provide ProvideSource
	// Inject lists values to resolve from ancestors.
	Inject Injections
	// Data returns the component's own reactive state. Its values are deeply
	// converted.
	Data func(c *Component) map[string]any
	// BeforeCreate runs after the parent link is set and before injections.
	BeforeCreate func(c *Component)
	// Created runs once the component has injected, initialized data and
	// provided, before any child is constructed.
	Created func(c *Component)
	// Children are constructed depth-first after Created.
	Children []*Options
}

// Component is a constructed node of the tree.
type Component struct {
	uid      int
	options  *Options
	owner    *Owner
	parent   *Component // non-owning
	root     *Component
	children []*Component
	depth    int

	provided Provided // nil when the component provides nothing
	props    *reactive.Object
	injected []string
}

// UID returns the component's unique id within its owner.
func (c *Component) UID() int {
	return c.uid
}

// Name returns the declared name, which may be empty.
func (c *Component) Name() string {
	if c.options == nil {
		return ""
	}
	return c.options.Name
}

// Options returns the declaration the component was built from.
func (c *Component) Options() *Options {
	return c.options
}

// Owner returns the owner that constructed the component.
func (c *Component) Owner() *Owner {
	return c.owner
}

// Parent returns the parent component, or nil for a root.
func (c *Component) Parent() *Component {
	return c.parent
}

// Root returns the root of the component's tree.
func (c *Component) Root() *Component {
	if c.root == nil {
		return c
	}
	return c.root
}

// Children returns the constructed children in declaration order.
func (c *Component) Children() []*Component {
	return c.children
}

// Depth returns the distance from the root (the root has depth 0).
func (c *Component) Depth() int {
	return c.depth
}

// Provided returns the values the component provides. ok is false when the
// component has no provide source, which is distinct from providing an
// empty map.
func (c *Component) Provided() (p Provided, ok bool) {
	return c.provided, c.provided != nil
}

// Props returns the component's reactive properties (data and injections).
func (c *Component) Props() *reactive.Object {
	return c.props
}

// Injected returns the names of installed injections in installation order.
func (c *Component) Injected() []string {
	return append([]string(nil), c.injected...)
}

// Get returns a property value.
func (c *Component) Get(name string) (any, bool) {
	return c.props.Get(name)
}

// Has reports whether a property is defined.
func (c *Component) Has(name string) bool {
	return c.props.Has(name)
}

// Set writes a property. Writing an injected property succeeds but, in
// debug mode, reports a warning.
func (c *Component) Set(name string, value any) error {
	return c.props.Set(name, value)
}

// Watch observes changes of a property.
func (c *Component) Watch(name string, fn reactive.WatchFunc) (func(), error) {
	return c.props.Watch(name, fn)
}

// VisitChildren calls visitor for each child until it returns false.
func (c *Component) VisitChildren(visitor func(*Component) bool) {
	for _, child := range c.children {
		if !visitor(child) {
			return
		}
	}
}

// FindAncestor walks up from the parent and returns the first component
// matching predicate.
func (c *Component) FindAncestor(predicate func(*Component) bool) *Component {
	for current := c.parent; current != nil; current = current.parent {
		if predicate(current) {
			return current
		}
	}
	return nil
}

// Walk visits root and its descendants depth-first, pre-order. Returning
// false from fn skips the component's subtree.
func Walk(root *Component, fn func(*Component) bool) {
	if root == nil {
		return
	}
	if !fn(root) {
		return
	}
	for _, child := range root.children {
		Walk(child, fn)
	}
}

// Find returns the first component named name in depth-first order.
func Find(root *Component, name string) *Component {
	var found *Component
	Walk(root, func(c *Component) bool {
		if found != nil {
			return false
		}
		if c.Name() == name {
			found = c
			return false
		}
		return true
	})
	return found
}
