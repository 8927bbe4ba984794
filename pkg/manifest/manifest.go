// Package manifest loads declarative component trees.
//
// A manifest describes a tree of components with what each provides, injects
// and holds as data. YAML, TOML and HCL are supported and decode into the
// same model:
//
//	symbols: [theme]
//	root:
//	  name: app
//	  provide:
//	    "@theme": dark
//	    locale: en
//	  children:
//	    - name: toolbar
//	      inject:
//	        theme: "@theme"
//	        locale: locale
//
// Keys starting with "@" name a declared symbol; every other key is a plain
// string key.
package manifest

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-drift/provide/pkg/core"
	"github.com/go-drift/provide/pkg/errors"
)

// Format identifies a manifest encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatHCL  Format = "hcl"
)

// SymbolPrefix marks a key as a reference to a declared symbol.
const SymbolPrefix = "@"

// ErrUnknownFormat is returned for unsupported file extensions or formats.
var ErrUnknownFormat = stderrors.New("unknown manifest format")

// Manifest is a decoded component tree description.
type Manifest struct {
	// Debug overrides the owner's debug mode when set.
	Debug *bool `yaml:"debug,omitempty" toml:"debug,omitempty"`
	// Symbols declares symbol keys, referenced as "@name".
	Symbols []string `yaml:"symbols,omitempty" toml:"symbols,omitempty"`
	// Root is the root component.
	Root *Node `yaml:"root" toml:"root"`

	// Path is the file the manifest was loaded from, if any.
	Path string `yaml:"-" toml:"-"`
}

// Node describes one component.
type Node struct {
	Name string `yaml:"name" toml:"name"`
	// Provide is nil when the component provides nothing and empty when it
	// provides an empty set.
	Provide  map[string]any `yaml:"provide" toml:"provide"`
	Data     map[string]any `yaml:"data,omitempty" toml:"data,omitempty"`
	Inject   InjectList     `yaml:"inject,omitempty" toml:"inject,omitempty"`
	Children []*Node        `yaml:"children,omitempty" toml:"children,omitempty"`
}

// InjectEntry requests From (a key, "@symbol" or empty for Name) as Name.
type InjectEntry struct {
	Name string `yaml:"name" toml:"name"`
	From string `yaml:"from,omitempty" toml:"from,omitempty"`
}

// InjectList is an ordered list of injection requests.
type InjectList []InjectEntry

// FormatForPath returns the format implied by a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".hcl":
		return FormatHCL, nil
	default:
		return "", fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
}

// Load reads and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	m, err := parse(data, format, path)
	if err != nil {
		return nil, err
	}
	m.Path = path
	return m, nil
}

// Parse decodes and validates manifest data in the given format.
func Parse(data []byte, format Format) (*Manifest, error) {
	return parse(data, format, "")
}

func parse(data []byte, format Format, path string) (*Manifest, error) {
	var (
		m   *Manifest
		err error
	)
	switch format {
	case FormatYAML:
		m, err = decodeYAML(data)
	case FormatTOML:
		m, err = decodeTOML(data)
	case FormatHCL:
		name := path
		if name == "" {
			name = "manifest.hcl"
		}
		m, err = decodeHCL(data, name)
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
	if err != nil {
		return nil, &errors.ParseError{Path: path, Format: string(format), Err: err}
	}
	m.normalize()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks the manifest for structural errors: a missing root,
// injections without a name, and references to undeclared or duplicate
// symbols.
func (m *Manifest) Validate() error {
	var errs []error
	declared := make(map[string]bool, len(m.Symbols))
	for _, s := range m.Symbols {
		switch {
		case s == "" || strings.HasPrefix(s, SymbolPrefix):
			errs = append(errs, fmt.Errorf("invalid symbol name %q", s))
		case declared[s]:
			errs = append(errs, fmt.Errorf("symbol %q declared twice", s))
		}
		declared[s] = true
	}
	checkKey := func(where, key string) {
		if name, ok := strings.CutPrefix(key, SymbolPrefix); ok && !declared[name] {
			errs = append(errs, fmt.Errorf("%s: undeclared symbol %q", where, key))
		}
	}

	if m.Root == nil {
		errs = append(errs, fmt.Errorf("manifest has no root component"))
	}
	walkNodes(m.Root, "root", func(n *Node, path string) {
		for key := range n.Provide {
			checkKey(path+".provide", key)
		}
		for i, inj := range n.Inject {
			where := fmt.Sprintf("%s.inject[%d]", path, i)
			if inj.Name == "" {
				errs = append(errs, fmt.Errorf("%s: missing name", where))
			}
			checkKey(where, inj.From)
		}
	})

	if len(errs) == 0 {
		return nil
	}
	return &errors.DriftError{
		Op:   "manifest.Validate",
		Kind: errors.KindConfig,
		Err:  stderrors.Join(errs...),
	}
}

// Build converts the manifest into component options. Each call creates
// fresh symbols, so two builds never share keys.
func (m *Manifest) Build() (*core.Options, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	symbols := make(map[string]*core.Symbol, len(m.Symbols))
	for _, s := range m.Symbols {
		symbols[s] = core.NewSymbol(s)
	}
	key := func(k string) any {
		if name, ok := strings.CutPrefix(k, SymbolPrefix); ok {
			return symbols[name]
		}
		return k
	}
	return buildNode(m.Root, key), nil
}

func buildNode(n *Node, key func(string) any) *core.Options {
	opts := &core.Options{Name: n.Name}
	if n.Provide != nil {
		provided := make(core.StaticProvide, len(n.Provide))
		for k, v := range n.Provide {
			provided[key(k)] = v
		}
		opts.Provide = provided
	}
	for _, inj := range n.Inject {
		var from any
		if inj.From != "" {
			from = key(inj.From)
		}
		opts.Inject = append(opts.Inject, core.Inject(inj.Name, from))
	}
	if n.Data != nil {
		data := n.Data
		opts.Data = func(*core.Component) map[string]any {
			return deepCopy(data).(map[string]any)
		}
	}
	for _, child := range n.Children {
		if child == nil {
			continue
		}
		opts.Children = append(opts.Children, buildNode(child, key))
	}
	return opts
}

// Count returns the number of components in the manifest.
func (m *Manifest) Count() int {
	n := 0
	walkNodes(m.Root, "root", func(*Node, string) { n++ })
	return n
}

func walkNodes(n *Node, path string, fn func(n *Node, path string)) {
	if n == nil {
		return
	}
	fn(n, path)
	for i, child := range n.Children {
		walkNodes(child, fmt.Sprintf("%s.children[%d]", path, i), fn)
	}
}

func (m *Manifest) normalize() {
	walkNodes(m.Root, "root", func(n *Node, _ string) {
		for k, v := range n.Provide {
			n.Provide[k] = normalizeValue(v)
		}
		for k, v := range n.Data {
			n.Data[k] = normalizeValue(v)
		}
	})
}

// normalizeValue gives every decoder the same numeric representation:
// integers are int, other numbers float64.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case int64:
		return int(t)
	case int32:
		return int(t)
	case uint64:
		return int(t)
	case map[string]any:
		for k, item := range t {
			t[k] = normalizeValue(item)
		}
		return t
	case []any:
		for i, item := range t {
			t[i] = normalizeValue(item)
		}
		return t
	default:
		return v
	}
}

func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = deepCopy(item)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = deepCopy(item)
		}
		return out
	default:
		return v
	}
}
