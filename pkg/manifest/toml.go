package manifest

import (
	"fmt"
	"sort"

	"github.com/BurntSushi/toml"
)

func decodeTOML(data []byte) (*Manifest, error) {
	var m Manifest
	md, err := toml.Decode(string(data), &m)
	if err != nil {
		return nil, err
	}
	orderInjectTables(&m, md.Keys())
	return &m, nil
}

// orderInjectTables restores the document order of injections declared as
// tables. UnmarshalTOML only sees a map, so it sorts by name; the decoder
// metadata lists keys as written. Nodes are visited in document order and
// each one takes the first remaining run of inject keys naming exactly its
// injections.
func orderInjectTables(m *Manifest, keys []toml.Key) {
	var runs [][]string
	prefix := ""
	for _, k := range keys {
		if len(k) < 2 || k[len(k)-2] != "inject" {
			prefix = ""
			continue
		}
		if p := k[:len(k)-1].String(); p != prefix {
			runs = append(runs, nil)
			prefix = p
		}
		runs[len(runs)-1] = append(runs[len(runs)-1], k[len(k)-1])
	}

	walkNodes(m.Root, "root", func(n *Node, _ string) {
		if len(n.Inject) < 2 {
			return
		}
		byName := make(map[string]InjectEntry, len(n.Inject))
		for _, e := range n.Inject {
			byName[e.Name] = e
		}
		if len(byName) != len(n.Inject) {
			return
		}
		for i, run := range runs {
			if !sameNames(run, byName) {
				continue
			}
			ordered := make(InjectList, 0, len(run))
			for _, name := range run {
				ordered = append(ordered, byName[name])
			}
			n.Inject = ordered
			runs = runs[i+1:]
			return
		}
	})
}

func sameNames(run []string, byName map[string]InjectEntry) bool {
	if len(run) != len(byName) {
		return false
	}
	for _, name := range run {
		if _, ok := byName[name]; !ok {
			return false
		}
	}
	return true
}

// UnmarshalTOML accepts an array of names, an array of tables with name and
// from, or an inline table mapping names to keys. Table entries come out in
// name order here; decodeTOML puts them back in document order.
func (l *InjectList) UnmarshalTOML(data any) error {
	switch v := data.(type) {
	case []map[string]any:
		out := make(InjectList, 0, len(v))
		for _, t := range v {
			e, err := injectEntryFromTable(t)
			if err != nil {
				return err
			}
			out = append(out, e)
		}
		*l = out
	case []any:
		out := make(InjectList, 0, len(v))
		for _, item := range v {
			switch item := item.(type) {
			case string:
				out = append(out, InjectEntry{Name: item})
			case map[string]any:
				e, err := injectEntryFromTable(item)
				if err != nil {
					return err
				}
				out = append(out, e)
			default:
				return fmt.Errorf("inject entries must be names or tables, got %T", item)
			}
		}
		*l = out
	case map[string]any:
		names := make([]string, 0, len(v))
		for name := range v {
			names = append(names, name)
		}
		sort.Strings(names)
		out := make(InjectList, 0, len(names))
		for _, name := range names {
			from, ok := v[name].(string)
			if !ok {
				return fmt.Errorf("inject source for %q must be a string", name)
			}
			out = append(out, InjectEntry{Name: name, From: from})
		}
		*l = out
	default:
		return fmt.Errorf("unsupported inject declaration %T", data)
	}
	return nil
}

func injectEntryFromTable(t map[string]any) (InjectEntry, error) {
	var e InjectEntry
	for k, v := range t {
		s, ok := v.(string)
		if !ok {
			return e, fmt.Errorf("inject %s must be a string, got %T", k, v)
		}
		switch k {
		case "name":
			e.Name = s
		case "from":
			e.From = s
		default:
			return e, fmt.Errorf("unknown inject field %q", k)
		}
	}
	return e, nil
}
