package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := Run(args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func manifestPath(name string) string {
	return filepath.Join("testdata", name)
}

func TestRun_Help(t *testing.T) {
	for _, args := range [][]string{nil, {"--help"}, {"help"}} {
		out, _, err := run(t, args...)
		if err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		if !strings.Contains(out, "Commands:") || !strings.Contains(out, "resolve") {
			t.Errorf("%v: unexpected help output:\n%s", args, out)
		}
	}

	out, _, err := run(t, "check", "--help")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "provide check") {
		t.Errorf("unexpected command help:\n%s", out)
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	_, stderr, err := run(t, "bogus")
	if err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Errorf("err = %v", err)
	}
	if !strings.Contains(stderr, `unknown command "bogus"`) {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestRun_Version(t *testing.T) {
	for _, arg := range []string{"version", "--version", "-v"} {
		out, _, err := run(t, arg)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(out, "provide CLI version "+Version) {
			t.Errorf("%s: output = %q", arg, out)
		}
		if !strings.Contains(out, "(github.com/go-drift/provide)") {
			t.Errorf("%s: missing module path in %q", arg, out)
		}
	}
}

func TestResolve_Text(t *testing.T) {
	out, stderr, err := run(t, "resolve", manifestPath("app.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	want := `<App>
  provides: limits, locale, Symbol(theme)
  data count = 1
  <Toolbar>
    provides: (empty)
    inject theme = dark
    inject locale = en
    <Button>
      inject locale = en
      inject limits = map[max:3]
      data labels = [a b]
  <Footer>
`
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("resolve output mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(stderr, `Injection \"missing\" not found`) && !strings.Contains(stderr, `Injection "missing" not found`) {
		t.Errorf("expected the unresolved warning in the log, got:\n%s", stderr)
	}
}

func TestResolve_JSON(t *testing.T) {
	out, _, err := run(t, "--log-format", "json", "resolve", "--json", manifestPath("app.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	var report struct {
		Manifest string `json:"manifest"`
		Tree     struct {
			Name     string `json:"name"`
			Children []struct {
				Name     string `json:"name"`
				Injected []struct {
					Name  string `json:"name"`
					Value any    `json:"value"`
				} `json:"injected"`
			} `json:"children"`
		} `json:"tree"`
		Warnings []string `json:"warnings"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if report.Tree.Name != "app" || len(report.Tree.Children) != 2 {
		t.Fatalf("unexpected tree: %+v", report.Tree)
	}
	if got := report.Tree.Children[0].Injected[0]; got.Name != "theme" || got.Value != "dark" {
		t.Errorf("toolbar theme = %+v", got)
	}
	if diff := cmp.Diff([]string{`Injection "missing" not found`}, report.Warnings); diff != "" {
		t.Errorf("warnings mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_JSONLogs(t *testing.T) {
	_, stderr, err := run(t, "resolve", "--log-format=json", manifestPath("app.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	var event map[string]any
	line := strings.SplitN(strings.TrimSpace(stderr), "\n", 2)[0]
	if err := json.Unmarshal([]byte(line), &event); err != nil {
		t.Fatalf("log line is not JSON: %q", line)
	}
	if event["level"] != "warn" || event["component"] != "<Footer>" || event["app"] != "provide" {
		t.Errorf("unexpected log event %v", event)
	}
}

func TestCheck(t *testing.T) {
	out, _, err := run(t, "check", manifestPath("app.yaml"))
	if !errors.Is(err, ErrUnresolved) {
		t.Errorf("strict check error = %v, want ErrUnresolved", err)
	}
	if !strings.Contains(out, `<Footer>: Injection "missing" not found`) {
		t.Errorf("check output = %q", out)
	}

	out, _, err = run(t, "check", "--no-strict", manifestPath("app.yaml"))
	if err != nil {
		t.Errorf("non-strict check error = %v", err)
	}
	if !strings.Contains(out, "1 unresolved injection(s)") {
		t.Errorf("check output = %q", out)
	}

	out, _, err = run(t, "check", manifestPath("ok.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if out != "ok: 2 components, all injections resolved\n" {
		t.Errorf("check output = %q", out)
	}

	if _, _, err := run(t, "check", "--strict", "--no-strict", manifestPath("ok.toml")); err == nil {
		t.Error("expected an error for conflicting flags")
	}
}

func TestTree(t *testing.T) {
	out, _, err := run(t, "tree", manifestPath("app.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	want := `symbols: theme
app  provides [@theme, limits, locale]
├── toolbar  provides [] injects [theme <- @theme, locale]
│   └── button  injects [locale, limits]
└── footer  injects [missing]
`
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("tree output mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_ArgumentErrors(t *testing.T) {
	tests := [][]string{
		{"resolve"},
		{"tree", "a.yaml", "b.yaml"},
		{"resolve", manifestPath("missing.yaml")},
		{"--debug", "--no-debug", "resolve", manifestPath("app.yaml")},
		{"--log-level", "loud", "resolve", manifestPath("app.yaml")},
	}
	for _, args := range tests {
		if _, _, err := run(t, args...); err == nil {
			t.Errorf("%v: expected an error", args)
		}
	}
}

func TestRun_DebugOverride(t *testing.T) {
	_, stderr, err := run(t, "--no-debug", "--log-level", "debug", "resolve", manifestPath("ok.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, "debug=false") {
		t.Errorf("expected debug=false in the mount log, got:\n%s", stderr)
	}
}
