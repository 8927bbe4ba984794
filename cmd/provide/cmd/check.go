package cmd

import (
	"fmt"

	"github.com/go-drift/provide/pkg/errors"
)

// ErrUnresolved is returned by check in strict mode when any injection
// could not be resolved.
var ErrUnresolved = errors.New("unresolved injections")

type checkOptions struct {
	Strict   bool `long:"strict" description:"Fail when any injection is unresolved (default from provide.yaml)"`
	NoStrict bool `long:"no-strict" description:"Report unresolved injections without failing"`
}

func init() {
	RegisterCommand(&Command{
		Name:  "check",
		Short: "Verify that every injection resolves",
		Long: `Construct the component tree described by a manifest and list every
injection that no ancestor provides. In strict mode (the default) the
command fails when any are found.`,
		Usage: "provide check [--strict|--no-strict] <manifest>",
		Run:   runCheck,
	})
}

func runCheck(env *Env, args []string) error {
	var opts checkOptions
	args, err := parseCommandFlags(&opts, args)
	if err != nil {
		return err
	}
	path, err := requireManifest(args, "provide check [--strict|--no-strict] <manifest>")
	if err != nil {
		return err
	}

	strict := env.Config.Strict
	switch {
	case opts.Strict && opts.NoStrict:
		return fmt.Errorf("--strict and --no-strict are mutually exclusive")
	case opts.Strict:
		strict = true
	case opts.NoStrict:
		strict = false
	}

	m, err := mountManifest(env, path)
	if err != nil {
		return err
	}

	unresolved := 0
	for _, w := range m.diag.warnings {
		if w.Op != "core.ResolveInject" {
			continue
		}
		unresolved++
		fmt.Fprintf(env.Out, "%s: %s\n", w.Component, w.Message)
	}
	if unresolved == 0 {
		fmt.Fprintf(env.Out, "ok: %d components, all injections resolved\n", m.manifest.Count())
		return nil
	}
	fmt.Fprintf(env.Out, "%d unresolved injection(s) in %s\n", unresolved, path)
	if strict {
		return fmt.Errorf("%s: %w", path, ErrUnresolved)
	}
	return nil
}
