package core

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// DebugMode is the default for new owners: when true, writes to injected
// properties report a warning. Use [WithDebug] to override per owner.
var DebugMode = true

// SetDebugMode sets the default debug behavior for owners created afterwards.
func SetDebugMode(debug bool) {
	DebugMode = debug
}

// FormatComponentName renders c for diagnostics: <Name> with kebab or snake
// case names classified (my-list becomes <MyList>), <Root> for an unnamed
// root, and <Anonymous> otherwise.
func FormatComponentName(c *Component) string {
	if c == nil {
		return "<Anonymous>"
	}
	name := c.Name()
	if name == "" {
		if c.parent == nil {
			return "<Root>"
		}
		return "<Anonymous>"
	}
	return "<" + classify(name) + ">"
}

// ComponentTrace renders the ancestry of c, innermost first:
//
//	found in
//
//	---> <Child>
//	       <Parent>
//	         <Root>
//
// Runs of consecutive components with the same name are collapsed into a
// single line noting the number of recursive calls.
func ComponentTrace(c *Component) string {
	if c == nil {
		return ""
	}
	if c.parent == nil {
		return fmt.Sprintf("(found in %s)", FormatComponentName(c))
	}

	type frame struct {
		c     *Component
		calls int
	}
	var tree []frame
	for current := c; current != nil; current = current.parent {
		if n := len(tree); n > 0 {
			last := &tree[n-1]
			if last.c.Name() != "" && last.c.Name() == current.Name() {
				last.calls++
				continue
			}
		}
		tree = append(tree, frame{c: current})
	}

	var sb strings.Builder
	sb.WriteString("found in\n\n")
	for i, f := range tree {
		if i > 0 {
			sb.WriteString("\n")
			sb.WriteString(strings.Repeat(" ", 5+i*2))
		} else {
			sb.WriteString("---> ")
		}
		sb.WriteString(FormatComponentName(f.c))
		if f.calls > 0 {
			fmt.Fprintf(&sb, "... (%d recursive calls)", f.calls)
		}
	}
	return sb.String()
}

func classify(name string) string {
	var sb strings.Builder
	upper := true
	for _, r := range name {
		if r == '-' || r == '_' {
			upper = true
			continue
		}
		if upper {
			sb.WriteRune(unicode.ToUpper(r))
			upper = false
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func sortedNames(m map[string]any) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
