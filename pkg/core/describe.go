package core

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/go-drift/provide/pkg/reactive"
)

// Description is a plain, serializable view of a constructed component.
type Description struct {
	Name    string `json:"name" yaml:"name"`
	Display string `json:"display" yaml:"display"`
	// Provides lists provided keys. It is nil when the component provides
	// nothing and empty when it provides an empty set.
	Provides []string       `json:"provides" yaml:"provides"`
	Injected []Binding      `json:"injected,omitempty" yaml:"injected,omitempty"`
	Data     []Binding      `json:"data,omitempty" yaml:"data,omitempty"`
	Children []*Description `json:"children,omitempty" yaml:"children,omitempty"`
}

// Binding is one named property value.
type Binding struct {
	Name  string `json:"name" yaml:"name"`
	Value any    `json:"value" yaml:"value"`
}

// Describe captures c and its subtree.
func Describe(c *Component) *Description {
	if c == nil {
		return nil
	}
	d := &Description{
		Name:    c.Name(),
		Display: FormatComponentName(c),
	}
	if p, ok := c.Provided(); ok {
		d.Provides = make([]string, 0, len(p))
		for _, k := range p.Keys() {
			d.Provides = append(d.Provides, KeyString(k))
		}
	}
	if c.props != nil {
		for _, name := range c.props.Keys() {
			v, _ := c.props.Get(name)
			b := Binding{Name: name, Value: plainValue(v)}
			if slices.Contains(c.injected, name) {
				d.Injected = append(d.Injected, b)
			} else {
				d.Data = append(d.Data, b)
			}
		}
	}
	for _, child := range c.children {
		d.Children = append(d.Children, Describe(child))
	}
	return d
}

// plainValue reduces v to values every encoder accepts.
func plainValue(v any) any {
	switch t := reactive.Raw(v).(type) {
	case nil, string, bool, int, int64, float64:
		return t
	case *Symbol:
		return t.String()
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = plainValue(item)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = plainValue(item)
		}
		return out
	default:
		rv := reflect.ValueOf(t)
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32:
			return int(rv.Int())
		case reflect.Float32:
			return rv.Float()
		}
		return fmt.Sprintf("%v", t)
	}
}
