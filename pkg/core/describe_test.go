package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDescribe(t *testing.T) {
	theme := NewSymbol("theme")
	o, _ := newTestOwner(t, false)
	root := mustMount(t, o, &Options{
		Name:    "app",
		Provide: StaticProvide{theme: "dark", "limits": map[string]any{"max": 3}},
		Children: []*Options{{
			Name:    "panel",
			Provide: StaticProvide{},
			Inject:  Injections{Inject("theme", theme), Inject("limits", nil)},
			Data: func(*Component) map[string]any {
				return map[string]any{"open": true, "items": []any{"a", int32(2)}}
			},
		}},
	})

	want := &Description{
		Name:     "app",
		Display:  "<App>",
		Provides: []string{"limits", "Symbol(theme)"},
		Children: []*Description{{
			Name:     "panel",
			Display:  "<Panel>",
			Provides: []string{},
			Injected: []Binding{
				{Name: "theme", Value: "dark"},
				{Name: "limits", Value: map[string]any{"max": 3}},
			},
			Data: []Binding{
				{Name: "items", Value: []any{"a", 2}},
				{Name: "open", Value: true},
			},
		}},
	}
	if diff := cmp.Diff(want, Describe(root)); diff != "" {
		t.Errorf("Describe mismatch (-want +got):\n%s", diff)
	}
	if Describe(nil) != nil {
		t.Error("Describe(nil) should be nil")
	}
}
