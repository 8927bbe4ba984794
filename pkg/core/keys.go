package core

import (
	"fmt"
	"sort"
)

// Symbol is a unique identity key. Two symbols are never equal, even when
// they share a description, so a Symbol cannot collide with a string key or
// with a symbol created elsewhere.
type Symbol struct {
	desc string
}

// NewSymbol returns a new unique key. desc is used only for display.
func NewSymbol(desc string) *Symbol {
	return &Symbol{desc: desc}
}

// Description returns the symbol's description.
func (s *Symbol) Description() string {
	return s.desc
}

func (s *Symbol) String() string {
	return "Symbol(" + s.desc + ")"
}

// KeyString renders a provide key for diagnostics.
func KeyString(key any) string {
	switch k := key.(type) {
	case string:
		return k
	case *Symbol:
		return k.String()
	case fmt.Stringer:
		return k.String()
	default:
		return fmt.Sprint(key)
	}
}

// Provided maps provide keys (strings or symbols) to values.
type Provided map[any]any

// Keys returns the provided keys with string keys first (sorted), then
// symbols in description order.
func (p Provided) Keys() []any {
	keys := make([]any, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.SliceStable(keys, func(i, j int) bool {
		si, iStr := keys[i].(string)
		sj, jStr := keys[j].(string)
		if iStr != jStr {
			return iStr
		}
		if iStr {
			return si < sj
		}
		return KeyString(keys[i]) < KeyString(keys[j])
	})
	return keys
}

// Has reports whether key is provided. A nil map provides nothing.
func (p Provided) Has(key any) bool {
	_, ok := p[key]
	return ok
}

// Injection requests the value provided under From and installs it on the
// component as Name. A nil From requests the key Name itself.
type Injection struct {
	Name string
	From any
}

// Key returns the provide key this injection resolves.
func (i Injection) Key() any {
	if i.From == nil {
		return i.Name
	}
	return i.From
}

// Injections is an ordered list of injection requests. The order decides the
// order of diagnostics and of property installation.
type Injections []Injection

// Inject returns a single injection installing the value of from as name.
func Inject(name string, from any) Injection {
	return Injection{Name: name, From: from}
}

// InjectNames requests each name under the same key.
func InjectNames(names ...string) Injections {
	out := make(Injections, 0, len(names))
	for _, name := range names {
		out = append(out, Injection{Name: name})
	}
	return out
}

// InjectMap converts a name-to-key map into injections sorted by name.
func InjectMap(m map[string]any) Injections {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make(Injections, 0, len(names))
	for _, name := range names {
		out = append(out, Injection{Name: name, From: m[name]})
	}
	return out
}
