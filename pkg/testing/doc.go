// Package testing provides helpers for testing provide/inject trees.
//
// # Quick Start
//
// Create a tester, mount a tree, and make assertions:
//
//	func TestToolbar(t *testing.T) {
//	    tester := drifttest.NewTesterWithT(t)
//	    tester.MustMount(t, &core.Options{
//	        Name:     "app",
//	        Provide:  core.StaticProvide{"theme": "dark"},
//	        Children: []*core.Options{{Name: "toolbar", Inject: core.InjectNames("theme")}},
//	    })
//
//	    theme, _ := tester.Get(drifttest.ByName("toolbar"), "theme")
//	    if theme != "dark" {
//	        t.Errorf("theme = %v", theme)
//	    }
//	    if msgs := tester.Recorder().Messages(); len(msgs) != 0 {
//	        t.Errorf("unexpected warnings: %v", msgs)
//	    }
//	}
//
// # Snapshot Testing
//
// Capture and compare the resolved tree:
//
//	snapshot, _ := tester.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/toolbar.snapshot.json")
//
// Update snapshots with:
//
//	DRIFT_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import drifttest "github.com/go-drift/provide/pkg/testing"
package testing
