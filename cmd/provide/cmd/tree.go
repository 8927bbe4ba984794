package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/go-drift/provide/pkg/manifest"
)

func init() {
	RegisterCommand(&Command{
		Name:  "tree",
		Short: "Show the declared component tree",
		Long: `Print the component tree declared by a manifest with what each
component provides and injects. Nothing is constructed.`,
		Usage: "provide tree <manifest>",
		Run:   runTree,
	})
}

func runTree(env *Env, args []string) error {
	path, err := requireManifest(args, "provide tree <manifest>")
	if err != nil {
		return err
	}
	m, err := manifest.Load(path)
	if err != nil {
		return err
	}
	if len(m.Symbols) > 0 {
		fmt.Fprintf(env.Out, "symbols: %s\n", strings.Join(m.Symbols, ", "))
	}
	printNode(env.Out, m.Root, "", "", true)
	return nil
}

func printNode(w io.Writer, n *manifest.Node, prefix, branch string, last bool) {
	fmt.Fprintf(w, "%s%s%s%s\n", prefix, branch, nodeLabel(n), annotations(n))

	childPrefix := prefix
	if branch != "" {
		if last {
			childPrefix += "    "
		} else {
			childPrefix += "│   "
		}
	}
	for i, child := range n.Children {
		isLast := i == len(n.Children)-1
		b := "├── "
		if isLast {
			b = "└── "
		}
		printNode(w, child, childPrefix, b, isLast)
	}
}

func nodeLabel(n *manifest.Node) string {
	if n.Name == "" {
		return "(anonymous)"
	}
	return n.Name
}

func annotations(n *manifest.Node) string {
	var parts []string
	if n.Provide != nil {
		keys := make([]string, 0, len(n.Provide))
		for k := range n.Provide {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts = append(parts, "provides ["+strings.Join(keys, ", ")+"]")
	}
	if len(n.Inject) > 0 {
		entries := make([]string, len(n.Inject))
		for i, inj := range n.Inject {
			entries[i] = inj.Name
			if inj.From != "" && inj.From != inj.Name {
				entries[i] += " <- " + inj.From
			}
		}
		parts = append(parts, "injects ["+strings.Join(entries, ", ")+"]")
	}
	if len(parts) == 0 {
		return ""
	}
	return "  " + strings.Join(parts, " ")
}
