package testing

import (
	"errors"
	"testing"

	"github.com/go-drift/provide/pkg/core"
	"github.com/go-drift/provide/pkg/reactive"
)

// ErrNotMounted is returned by operations that need a mounted tree.
var ErrNotMounted = errors.New("no component tree mounted")

// Tester mounts component trees against an isolated owner and records
// every diagnostic the owner reports.
type Tester struct {
	owner    *core.Owner
	recorder *Recorder
	root     *core.Component
}

// TesterOption configures a Tester.
type TesterOption func(*testerConfig)

type testerConfig struct {
	debug    bool
	defineFn func(*reactive.Object, string)
}

// WithDebug sets the owner's debug mode. Testers default to debug mode on.
func WithDebug(debug bool) TesterOption {
	return func(c *testerConfig) {
		c.debug = debug
	}
}

// WithDefineHook observes every property definition made by the tester's
// runtime.
func WithDefineHook(fn func(obj *reactive.Object, name string)) TesterOption {
	return func(c *testerConfig) {
		c.defineFn = fn
	}
}

// NewTester creates a tester with its own owner, runtime and recorder.
func NewTester(opts ...TesterOption) *Tester {
	cfg := testerConfig{debug: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	var rtOpts []reactive.RuntimeOption
	if cfg.defineFn != nil {
		rtOpts = append(rtOpts, reactive.WithDefineHook(cfg.defineFn))
	}
	rec := NewRecorder()
	return &Tester{
		recorder: rec,
		owner: core.NewOwner(
			core.WithHandler(rec),
			core.WithDebug(cfg.debug),
			core.WithRuntime(reactive.NewRuntime(rtOpts...)),
		),
	}
}

// NewTesterWithT creates a tester and fails t if the conversion flag is
// left suppressed when the test ends.
func NewTesterWithT(t *testing.T, opts ...TesterOption) *Tester {
	tester := NewTester(opts...)
	t.Cleanup(func() {
		if !tester.owner.Runtime().ShouldConvert() {
			t.Errorf("conversion left suppressed after %s", t.Name())
		}
	})
	return tester
}

// Mount constructs a tree from opts, replacing any previously mounted root.
func (t *Tester) Mount(opts *core.Options) (*core.Component, error) {
	root, err := t.owner.Mount(opts)
	if err != nil {
		return nil, err
	}
	t.root = root
	return root, nil
}

// MustMount is like Mount but fails tb on error.
func (t *Tester) MustMount(tb testing.TB, opts *core.Options) *core.Component {
	tb.Helper()
	root, err := t.Mount(opts)
	if err != nil {
		tb.Fatalf("mount failed: %v", err)
	}
	return root
}

// Root returns the most recently mounted root, or nil.
func (t *Tester) Root() *core.Component {
	return t.root
}

// Owner returns the tester's owner.
func (t *Tester) Owner() *core.Owner {
	return t.owner
}

// Recorder returns the diagnostics recorder.
func (t *Tester) Recorder() *Recorder {
	return t.recorder
}

// Find evaluates finder against the mounted tree.
func (t *Tester) Find(finder Finder) FinderResult {
	if t.root == nil {
		return FinderResult{finder: finder}
	}
	return FinderResult{components: finder.Evaluate(t.root), finder: finder}
}

// Get reads a property from the first component matched by finder.
func (t *Tester) Get(finder Finder, name string) (any, bool) {
	c := t.Find(finder).FirstOrNil()
	if c == nil {
		return nil, false
	}
	return c.Get(name)
}

// CaptureSnapshot describes the mounted tree.
func (t *Tester) CaptureSnapshot() (*Snapshot, error) {
	if t.root == nil {
		return nil, ErrNotMounted
	}
	return &Snapshot{Tree: core.Describe(t.root), Warnings: t.recorder.Messages()}, nil
}
