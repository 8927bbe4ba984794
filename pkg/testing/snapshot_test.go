package testing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-drift/provide/pkg/core"
)

func snapshotOf(t *testing.T, opts *core.Options) *Snapshot {
	t.Helper()
	tester := NewTesterWithT(t)
	tester.MustMount(t, opts)
	snap, err := tester.CaptureSnapshot()
	if err != nil {
		t.Fatal(err)
	}
	return snap
}

func TestCaptureSnapshot_Tree(t *testing.T) {
	snap := snapshotOf(t, appTree())
	if snap.Tree == nil || snap.Tree.Name != "app" {
		t.Fatalf("unexpected tree %+v", snap.Tree)
	}
	toolbar := snap.Tree.Children[0]
	if len(toolbar.Injected) != 1 || toolbar.Injected[0].Name != "theme" {
		t.Errorf("toolbar injected = %+v", toolbar.Injected)
	}
	if len(snap.Warnings) != 1 {
		t.Errorf("warnings = %v", snap.Warnings)
	}
}

func TestSnapshot_Diff_Equal(t *testing.T) {
	a := snapshotOf(t, appTree())
	b := snapshotOf(t, appTree())
	if diff := a.Diff(b); diff != "" {
		t.Errorf("expected no diff for identical snapshots, got:\n%s", diff)
	}
}

func TestSnapshot_Diff_Different(t *testing.T) {
	a := snapshotOf(t, appTree())
	opts := appTree()
	opts.Provide = core.StaticProvide{"theme": "light", "locale": "en"}
	b := snapshotOf(t, opts)
	if diff := a.Diff(b); diff == "" {
		t.Error("expected diff for different snapshots")
	}
}

func TestSnapshot_UpdateAndMatch(t *testing.T) {
	t.Setenv(UpdateSnapshotsEnv, "")
	snap := snapshotOf(t, appTree())

	path := filepath.Join(t.TempDir(), "testdata", "app.snapshot.json")
	if err := snap.UpdateFile(path); err != nil {
		t.Fatalf("UpdateFile failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("snapshot file should exist after UpdateFile")
	}

	snap.MatchesFile(t, path)
}

func TestSnapshot_MatchesFile_MissingFile(t *testing.T) {
	t.Setenv(UpdateSnapshotsEnv, "")
	snap := snapshotOf(t, appTree())

	failed := false
	sub := &fatalRecorder{name: t.Name(), onFatal: func() { failed = true }}
	snap.MatchesFile(sub, "/nonexistent/path/snap.json")

	if !failed {
		t.Error("expected MatchesFile to fail for missing file")
	}
}

func TestSnapshot_MatchesFile_Mismatch(t *testing.T) {
	t.Setenv(UpdateSnapshotsEnv, "")
	first := snapshotOf(t, appTree())

	path := filepath.Join(t.TempDir(), "snap.json")
	if err := first.UpdateFile(path); err != nil {
		t.Fatal(err)
	}

	opts := appTree()
	opts.Children = nil
	second := snapshotOf(t, opts)

	errored := false
	sub := &errorRecorder{name: t.Name(), onError: func() { errored = true }}
	second.MatchesFile(sub, path)

	if !errored {
		t.Error("expected MatchesFile to report error for mismatch")
	}
}

func TestSnapshot_UpdateMode(t *testing.T) {
	snap := snapshotOf(t, appTree())
	path := filepath.Join(t.TempDir(), "update.snapshot.json")

	t.Setenv(UpdateSnapshotsEnv, "1")
	snap.MatchesFile(t, path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("snapshot file should be created in update mode")
	}
}

// fatalRecorder intercepts Fatalf calls for testing MatchesFile failures.
type fatalRecorder struct {
	name    string
	onFatal func()
}

func (r *fatalRecorder) Fatalf(format string, args ...any) { r.onFatal() }
func (r *fatalRecorder) Errorf(format string, args ...any) {}
func (r *fatalRecorder) Helper()                           {}
func (r *fatalRecorder) Name() string                      { return r.name }

// errorRecorder intercepts Errorf calls for testing MatchesFile mismatches.
type errorRecorder struct {
	name    string
	onError func()
}

func (r *errorRecorder) Fatalf(format string, args ...any) {}
func (r *errorRecorder) Errorf(format string, args ...any) { r.onError() }
func (r *errorRecorder) Helper()                           {}
func (r *errorRecorder) Name() string                      { return r.name }
