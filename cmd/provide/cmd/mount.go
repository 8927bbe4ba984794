package cmd

import (
	"fmt"

	"github.com/go-drift/provide/pkg/core"
	"github.com/go-drift/provide/pkg/errors"
	"github.com/go-drift/provide/pkg/manifest"
)

// collector forwards diagnostics to the log and keeps the warnings.
type collector struct {
	errors.Handler
	warnings []*errors.Warning
}

func (c *collector) HandleWarning(w *errors.Warning) {
	c.warnings = append(c.warnings, w)
	c.Handler.HandleWarning(w)
}

func (c *collector) messages() []string {
	out := make([]string, len(c.warnings))
	for i, w := range c.warnings {
		out[i] = w.Message
	}
	return out
}

type mounted struct {
	manifest *manifest.Manifest
	root     *core.Component
	diag     *collector
}

// mountManifest loads the manifest at path and constructs its tree.
func mountManifest(env *Env, path string) (*mounted, error) {
	m, err := manifest.Load(path)
	if err != nil {
		return nil, err
	}
	opts, err := m.Build()
	if err != nil {
		return nil, err
	}

	debug := env.Config.Debug
	if m.Debug != nil {
		debug = *m.Debug
	}
	if env.Debug != nil {
		debug = *env.Debug
	}

	diag := &collector{Handler: errors.NewZerologHandler(env.Logger)}
	owner := core.NewOwner(core.WithHandler(diag), core.WithDebug(debug))
	env.Logger.Debug().
		Str("manifest", path).
		Int("components", m.Count()).
		Bool("debug", debug).
		Msg("mounting manifest")

	root, err := owner.Mount(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to construct %s: %w", path, err)
	}
	return &mounted{manifest: m, root: root, diag: diag}, nil
}

func requireManifest(args []string, usage string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("exactly one manifest path is required\n\nUsage: %s", usage)
	}
	return args[0], nil
}
