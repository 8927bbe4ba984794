package core

import (
	"github.com/go-drift/provide/pkg/errors"
)

// InitProvide evaluates the component's provide source and stores the result
// for descendants. A component without a source stores nothing, which
// [Component.Provided] reports as absent. Errors from a [ProvideFunc] are
// returned wrapped, not handled.
//
// InitProvide must run before any descendant resolves its injections.
func InitProvide(c *Component) error {
	source := c.options.Provide
	if source == nil {
		return nil
	}
	provided, err := source.provide(c)
	if err != nil {
		return &errors.DriftError{
			Op:        "core.InitProvide",
			Kind:      errors.KindProvide,
			Component: FormatComponentName(c),
			Err:       err,
		}
	}
	if provided == nil {
		provided = Provided{}
	}
	c.provided = provided
	return nil
}
