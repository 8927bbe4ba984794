package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolve_Defaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "go.mod"), "module example.com/acme/widgets/v2\n\ngo 1.24\n")

	res, err := Resolve(dir, "")
	if err != nil {
		t.Fatal(err)
	}
	if res.ModulePath != "example.com/acme/widgets/v2" {
		t.Errorf("ModulePath = %q", res.ModulePath)
	}
	if res.ProjectName != "widgets" {
		t.Errorf("ProjectName = %q, want widgets", res.ProjectName)
	}
	if !res.Debug || !res.Strict {
		t.Error("debug and strict should default to true")
	}
	if res.LogLevel != "info" || res.LogFormat != "console" {
		t.Errorf("log = %s/%s", res.LogLevel, res.LogFormat)
	}
}

func TestResolve_File(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), "debug: false\nstrict: false\nlog:\n  level: Debug\n  format: json\n")

	res, err := Resolve(dir, "")
	if err != nil {
		t.Fatal(err)
	}
	if res.Debug || res.Strict {
		t.Error("file values should override defaults")
	}
	if res.LogLevel != "debug" || res.LogFormat != "json" {
		t.Errorf("log = %s/%s", res.LogLevel, res.LogFormat)
	}
	if res.ProjectName != filepath.Base(dir) {
		t.Errorf("ProjectName = %q, want directory name", res.ProjectName)
	}
}

func TestResolve_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf", "custom.yaml")
	writeFile(t, path, "log:\n  format: json\n")

	res, err := Resolve(dir, path)
	if err != nil {
		t.Fatal(err)
	}
	if res.LogFormat != "json" {
		t.Errorf("LogFormat = %q", res.LogFormat)
	}

	if _, err := Resolve(dir, filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("an explicit missing config should be an error")
	}
}

func TestResolve_Invalid(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), "log:\n  format: xml\n")
	if _, err := Resolve(dir, ""); err == nil {
		t.Error("expected an error for an unknown log format")
	}

	writeFile(t, filepath.Join(dir, FileName), "debug: [\n")
	if _, err := Resolve(dir, ""); err == nil {
		t.Error("expected a parse error")
	}
}

func TestFindProjectRootFrom(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "go.mod"), "module example.com/x\n")
	nested := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := FindProjectRootFrom(nested)
	if err != nil {
		t.Fatal(err)
	}
	if got != dir {
		t.Errorf("FindProjectRootFrom() = %q, want %q", got, dir)
	}
}
