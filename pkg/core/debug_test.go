package core

import (
	"testing"
)

func TestFormatComponentName(t *testing.T) {
	o, _ := newTestOwner(t, true)
	root := mustMount(t, o, &Options{
		Children: []*Options{
			{Name: "my-list"},
			{Name: "user_card"},
			{},
		},
	})
	children := root.Children()

	tests := []struct {
		c    *Component
		want string
	}{
		{root, "<Root>"},
		{children[0], "<MyList>"},
		{children[1], "<UserCard>"},
		{children[2], "<Anonymous>"},
		{nil, "<Anonymous>"},
	}
	for _, tt := range tests {
		if got := FormatComponentName(tt.c); got != tt.want {
			t.Errorf("FormatComponentName() = %q, want %q", got, tt.want)
		}
	}
}

func TestFormatComponentNameNamedRoot(t *testing.T) {
	o, _ := newTestOwner(t, true)
	root := mustMount(t, o, &Options{Name: "settings-app"})
	if got := FormatComponentName(root); got != "<SettingsApp>" {
		t.Errorf("FormatComponentName(root) = %q, want <SettingsApp>", got)
	}
}

func TestComponentTrace(t *testing.T) {
	o, _ := newTestOwner(t, true)
	root := mustMount(t, o, &Options{
		Name: "app",
		Children: []*Options{{
			Name: "panel",
			Children: []*Options{{
				Name: "button",
			}},
		}},
	})

	want := "found in\n\n" +
		"---> <Button>\n" +
		"       <Panel>\n" +
		"         <App>"
	if got := ComponentTrace(Find(root, "button")); got != want {
		t.Errorf("ComponentTrace() =\n%s\nwant\n%s", got, want)
	}
	if got, want := ComponentTrace(root), "(found in <App>)"; got != want {
		t.Errorf("root trace = %q, want %q", got, want)
	}
	if got := ComponentTrace(nil); got != "" {
		t.Errorf("nil trace = %q", got)
	}
}

func TestComponentTraceCollapsesRecursion(t *testing.T) {
	o, _ := newTestOwner(t, true)
	leaf := &Options{Name: "tree-node"}
	mid := &Options{Name: "tree-node", Children: []*Options{leaf}}
	top := &Options{Name: "tree-node", Children: []*Options{mid}}
	root := mustMount(t, o, &Options{Name: "app", Children: []*Options{top}})

	var deepest *Component
	Walk(root, func(c *Component) bool {
		deepest = c
		return true
	})

	want := "found in\n\n" +
		"---> <TreeNode>... (2 recursive calls)\n" +
		"       <App>"
	if got := ComponentTrace(deepest); got != want {
		t.Errorf("ComponentTrace() =\n%s\nwant\n%s", got, want)
	}
}
