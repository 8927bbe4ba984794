package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/go-drift/provide/pkg/core"
)

type resolveOptions struct {
	JSON bool `long:"json" description:"Print the resolved tree as JSON"`
}

func init() {
	RegisterCommand(&Command{
		Name:  "resolve",
		Short: "Show how every injection resolves",
		Long: `Construct the component tree described by a manifest and print, for
each component, the keys it provides, the values it injected and its own
data. Unresolved injections are logged as warnings.`,
		Usage: "provide resolve [--json] <manifest>",
		Run:   runResolve,
	})
}

// resolveReport is the JSON form of the resolve output.
type resolveReport struct {
	Manifest string            `json:"manifest"`
	Tree     *core.Description `json:"tree"`
	Warnings []string          `json:"warnings"`
}

func runResolve(env *Env, args []string) error {
	var opts resolveOptions
	args, err := parseCommandFlags(&opts, args)
	if err != nil {
		return err
	}
	path, err := requireManifest(args, "provide resolve [--json] <manifest>")
	if err != nil {
		return err
	}

	m, err := mountManifest(env, path)
	if err != nil {
		return err
	}

	desc := core.Describe(m.root)
	if opts.JSON {
		enc := json.NewEncoder(env.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(resolveReport{
			Manifest: path,
			Tree:     desc,
			Warnings: m.diag.messages(),
		})
	}
	printResolved(env.Out, desc, 0)
	return nil
}

func printResolved(w io.Writer, d *core.Description, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%s%s\n", indent, d.Display)
	if d.Provides != nil {
		if len(d.Provides) == 0 {
			fmt.Fprintf(w, "%s  provides: (empty)\n", indent)
		} else {
			fmt.Fprintf(w, "%s  provides: %s\n", indent, strings.Join(d.Provides, ", "))
		}
	}
	for _, b := range d.Injected {
		fmt.Fprintf(w, "%s  inject %s = %v\n", indent, b.Name, b.Value)
	}
	for _, b := range d.Data {
		fmt.Fprintf(w, "%s  data %s = %v\n", indent, b.Name, b.Value)
	}
	for _, child := range d.Children {
		printResolved(w, child, depth+1)
	}
}
