package testing

import (
	stderrors "errors"
	"testing"

	"github.com/go-drift/provide/pkg/core"
	"github.com/go-drift/provide/pkg/reactive"
	"github.com/google/go-cmp/cmp"
)

func appTree() *core.Options {
	return &core.Options{
		Name:    "app",
		Provide: core.StaticProvide{"theme": "dark", "locale": "en"},
		Children: []*core.Options{{
			Name:   "toolbar",
			Inject: core.InjectNames("theme", "user"),
			Children: []*core.Options{{
				Name:   "button",
				Inject: core.InjectNames("locale"),
			}},
		}},
	}
}

func TestNewTester_Defaults(t *testing.T) {
	tester := NewTesterWithT(t)

	if !tester.Owner().Debug() {
		t.Error("expected debug mode by default")
	}
	if tester.Root() != nil {
		t.Error("expected no root before Mount")
	}
	if _, err := tester.CaptureSnapshot(); !stderrors.Is(err, ErrNotMounted) {
		t.Errorf("CaptureSnapshot() error = %v, want ErrNotMounted", err)
	}
	if tester.Find(ByName("app")).Exists() {
		t.Error("Find on an empty tester should match nothing")
	}
}

func TestMount_RecordsWarnings(t *testing.T) {
	tester := NewTesterWithT(t)
	root := tester.MustMount(t, appTree())

	if tester.Root() != root {
		t.Fatal("Root() should return the mounted tree")
	}
	if diff := cmp.Diff([]string{`Injection "user" not found`}, tester.Recorder().Messages()); diff != "" {
		t.Errorf("warnings mismatch (-want +got):\n%s", diff)
	}
	if v, ok := tester.Get(ByName("button"), "locale"); !ok || v != "en" {
		t.Errorf("button locale = %v, %v", v, ok)
	}
	if _, ok := tester.Get(ByName("missing"), "locale"); ok {
		t.Error("Get on a missing component should report false")
	}

	w := tester.Recorder().Warnings()[0]
	if w.Component != "<Toolbar>" {
		t.Errorf("warning component = %q", w.Component)
	}
}

func TestMount_Remount(t *testing.T) {
	tester := NewTesterWithT(t)
	first := tester.MustMount(t, appTree())
	second := tester.MustMount(t, appTree())
	if first == second || tester.Root() != second {
		t.Error("expected the new root after remount")
	}
}

func TestWithDebug_Off(t *testing.T) {
	tester := NewTesterWithT(t, WithDebug(false))
	tester.MustMount(t, appTree())

	tester.Recorder().Reset()
	if err := tester.Find(ByName("toolbar")).First().Set("theme", "light"); err != nil {
		t.Fatal(err)
	}
	if msgs := tester.Recorder().Messages(); len(msgs) != 0 {
		t.Errorf("expected no mutation warning, got %v", msgs)
	}
}

func TestWithDefineHook(t *testing.T) {
	var defined []string
	tester := NewTesterWithT(t, WithDefineHook(func(_ *reactive.Object, name string) {
		defined = append(defined, name)
	}))
	tester.MustMount(t, appTree())

	if diff := cmp.Diff([]string{"theme", "locale"}, defined); diff != "" {
		t.Errorf("definitions mismatch (-want +got):\n%s", diff)
	}
}

func TestRecorder_Reset(t *testing.T) {
	tester := NewTesterWithT(t)
	tester.MustMount(t, appTree())
	rec := tester.Recorder()
	if len(rec.Warnings()) == 0 {
		t.Fatal("expected warnings before reset")
	}
	rec.Reset()
	if len(rec.Warnings()) != 0 || len(rec.Errors()) != 0 || len(rec.Panics()) != 0 {
		t.Error("Reset should clear everything")
	}
}

func TestMount_ErrorIsRecorded(t *testing.T) {
	tester := NewTesterWithT(t)
	_, err := tester.Mount(&core.Options{
		Name: "broken",
		Provide: core.ProvideFunc(func(*core.Component) (core.Provided, error) {
			return nil, stderrors.New("boom")
		}),
	})
	if err == nil {
		t.Fatal("expected mount error")
	}
	if len(tester.Recorder().Errors()) != 1 {
		t.Errorf("recorded %d errors, want 1", len(tester.Recorder().Errors()))
	}
	if tester.Root() != nil {
		t.Error("failed mount should not replace the root")
	}
}
