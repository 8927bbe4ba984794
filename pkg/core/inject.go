package core

import (
	"fmt"

	"github.com/go-drift/provide/pkg/errors"
	"github.com/go-drift/provide/pkg/reactive"
)

// ResolveInject resolves each injection against the nearest component that
// provides its key, walking from c itself up through its ancestors. The
// first match wins. Unresolved injections are left out of the result and
// reported as warnings, one per injection, in declaration order.
//
// The walk starts at c, so a component that already ran [InitProvide] can
// resolve its own provided values. During normal construction injections are
// resolved before the component provides, so this only happens when the
// entry points are driven directly.
//
// ResolveInject returns nil when there is nothing to resolve.
func ResolveInject(injections Injections, c *Component) map[string]any {
	if len(injections) == 0 {
		return nil
	}
	result := make(map[string]any, len(injections))
	for _, inj := range injections {
		key := inj.Key()
		source := c
		for source != nil {
			if source.provided != nil && source.provided.Has(key) {
				result[inj.Name] = source.provided[key]
				break
			}
			source = source.parent
		}
		if source == nil {
			delete(result, inj.Name)
			warn(c, "core.ResolveInject", fmt.Sprintf("Injection %q not found", inj.Name))
		}
	}
	return result
}

// InitInjections resolves the component's injections and installs each
// resolved value as a reactive property. Deep conversion is suppressed for
// the whole batch and restored to its prior state afterwards, including when
// a definition fails. In debug mode writes to an injected property report a
// warning; the write still happens.
func InitInjections(c *Component) error {
	injections := c.options.Inject
	result := ResolveInject(injections, c)
	if result == nil {
		return nil
	}

	rt := c.owner.runtime
	restore := rt.SuppressConversion()
	defer restore()

	installed := make(map[string]bool, len(result))
	for _, inj := range injections {
		value, ok := result[inj.Name]
		if !ok || installed[inj.Name] {
			continue
		}
		installed[inj.Name] = true

		var opts []reactive.Option
		if c.owner.warnOnWrite {
			name := inj.Name
			opts = append(opts, reactive.WithCustomSetter(func() {
				warn(c, "core.InitInjections", fmt.Sprintf(
					"Avoid mutating an injected value directly since the changes will be "+
						"overwritten whenever the provided component re-renders. "+
						"injection being mutated: %q", name))
			}))
		}
		if err := rt.DefineReactive(c.props, inj.Name, value, opts...); err != nil {
			return &errors.DriftError{
				Op:        "core.InitInjections",
				Kind:      errors.KindInject,
				Component: FormatComponentName(c),
				Err:       err,
			}
		}
		c.injected = append(c.injected, inj.Name)
	}
	return nil
}

func warn(c *Component, op, msg string) {
	var h errors.Handler
	if c.owner != nil {
		h = c.owner.handler
	}
	errors.WarnTo(h, &errors.Warning{
		Op:        op,
		Kind:      errors.KindInject,
		Message:   msg,
		Component: FormatComponentName(c),
		Trace:     ComponentTrace(c),
	})
}
