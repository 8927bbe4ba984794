package testing

import (
	"fmt"
	"slices"

	"github.com/go-drift/provide/pkg/core"
)

// Finder locates components in a constructed tree.
type Finder interface {
	// Evaluate returns all matching components under root (depth-first pre-order).
	Evaluate(root *core.Component) []*core.Component
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	components []*core.Component
	finder     Finder
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() *core.Component {
	if len(r.components) == 0 {
		panic(fmt.Sprintf("Finder found no components: %s", r.description()))
	}
	return r.components[0]
}

// FirstOrNil returns the first match, or nil if none.
func (r FinderResult) FirstOrNil() *core.Component {
	if len(r.components) == 0 {
		return nil
	}
	return r.components[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) *core.Component {
	if index < 0 || index >= len(r.components) {
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.components), r.description()))
	}
	return r.components[index]
}

// All returns all matches in traversal order.
func (r FinderResult) All() []*core.Component {
	return r.components
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.components)
}

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.components) > 0
}

func (r FinderResult) description() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

// --- Concrete finders ---

type predicateFinder struct {
	fn   func(*core.Component) bool
	desc string
}

func (f *predicateFinder) Evaluate(root *core.Component) []*core.Component {
	return collectMatches(root, f.fn)
}

func (f *predicateFinder) Description() string {
	return f.desc
}

// ByName matches components with the given name.
func ByName(name string) Finder {
	return &predicateFinder{
		fn:   func(c *core.Component) bool { return c.Name() == name },
		desc: fmt.Sprintf("ByName(%q)", name),
	}
}

// ByInjected matches components that installed an injection named name.
func ByInjected(name string) Finder {
	return &predicateFinder{
		fn:   func(c *core.Component) bool { return slices.Contains(c.Injected(), name) },
		desc: fmt.Sprintf("ByInjected(%q)", name),
	}
}

// ByProvides matches components whose provided set contains key.
func ByProvides(key any) Finder {
	return &predicateFinder{
		fn: func(c *core.Component) bool {
			p, ok := c.Provided()
			return ok && p.Has(key)
		},
		desc: fmt.Sprintf("ByProvides(%s)", core.KeyString(key)),
	}
}

// ByPredicate returns a finder that matches components satisfying fn.
func ByPredicate(fn func(*core.Component) bool) Finder {
	return &predicateFinder{fn: fn, desc: "ByPredicate(...)"}
}

// descendantFinder finds components matching 'matching' that are
// descendants of components matching 'of'.
type descendantFinder struct {
	of       Finder
	matching Finder
}

func (f *descendantFinder) Evaluate(root *core.Component) []*core.Component {
	var results []*core.Component
	seen := make(map[*core.Component]bool)
	for _, ancestor := range f.of.Evaluate(root) {
		// Search within each ancestor's subtree, skipping the ancestor itself
		ancestor.VisitChildren(func(child *core.Component) bool {
			for _, match := range f.matching.Evaluate(child) {
				if !seen[match] {
					seen[match] = true
					results = append(results, match)
				}
			}
			return true
		})
	}
	return results
}

func (f *descendantFinder) Description() string {
	return fmt.Sprintf("Descendant(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Descendant returns a finder that matches components satisfying 'matching'
// that are descendants of components matching 'of'.
func Descendant(of, matching Finder) Finder {
	return &descendantFinder{of: of, matching: matching}
}

// ancestorFinder finds components matching 'matching' that are ancestors
// of components matching 'of'.
type ancestorFinder struct {
	of       Finder
	matching Finder
}

func (f *ancestorFinder) Evaluate(root *core.Component) []*core.Component {
	candidates := f.matching.Evaluate(root)
	if len(candidates) == 0 {
		return nil
	}
	var results []*core.Component
	seen := make(map[*core.Component]bool)
	for _, desc := range f.of.Evaluate(root) {
		for current := desc.Parent(); current != nil; current = current.Parent() {
			if !seen[current] && slices.Contains(candidates, current) {
				seen[current] = true
				results = append(results, current)
			}
		}
	}
	return results
}

func (f *ancestorFinder) Description() string {
	return fmt.Sprintf("Ancestor(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Ancestor returns a finder that matches components satisfying 'matching'
// that are ancestors of components matching 'of'.
func Ancestor(of, matching Finder) Finder {
	return &ancestorFinder{of: of, matching: matching}
}

// collectMatches performs a depth-first pre-order traversal, collecting
// components that satisfy the predicate.
func collectMatches(root *core.Component, predicate func(*core.Component) bool) []*core.Component {
	var results []*core.Component
	core.Walk(root, func(c *core.Component) bool {
		if predicate(c) {
			results = append(results, c)
		}
		return true
	})
	return results
}
