package manifest

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func decodeYAML(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// UnmarshalYAML accepts three shapes, all keeping document order:
//
//	inject: [theme, locale]
//	inject: [{name: theme, from: "@theme"}]
//	inject: {theme: "@theme", locale: locale}
func (l *InjectList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		out := make(InjectList, 0, len(value.Content))
		for _, item := range value.Content {
			switch item.Kind {
			case yaml.ScalarNode:
				out = append(out, InjectEntry{Name: item.Value})
			case yaml.MappingNode:
				var e InjectEntry
				if err := item.Decode(&e); err != nil {
					return err
				}
				out = append(out, e)
			default:
				return fmt.Errorf("line %d: inject entries must be names or {name, from} mappings", item.Line)
			}
		}
		*l = out
	case yaml.MappingNode:
		out := make(InjectList, 0, len(value.Content)/2)
		for i := 0; i+1 < len(value.Content); i += 2 {
			k, v := value.Content[i], value.Content[i+1]
			if v.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: inject source for %q must be a key", v.Line, k.Value)
			}
			from := v.Value
			if v.Tag == "!!null" {
				from = ""
			}
			out = append(out, InjectEntry{Name: k.Value, From: from})
		}
		*l = out
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*l = nil
			return nil
		}
		*l = InjectList{{Name: value.Value}}
	default:
		return fmt.Errorf("line %d: unsupported inject declaration", value.Line)
	}
	return nil
}
