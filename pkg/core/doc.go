// Package core provides the component tree and its provide/inject mechanism.
//
// A component may provide values to its subtree, and any descendant may
// inject them by key. An injection resolves through the nearest component,
// starting with the requester itself and walking up the parent chain, that
// provides the requested key. Resolved values are installed as reactive
// properties on the requester.
//
// # Declaring a tree
//
//	theme := core.NewSymbol("theme")
//
//	root := &core.Options{
//	    Name:    "app",
//	    Provide: core.StaticProvide{theme: "dark", "locale": "en"},
//	    Children: []*core.Options{{
//	        Name: "toolbar",
//	        Inject: core.Injections{
//	            core.Inject("theme", theme),
//	            core.Inject("locale", nil),
//	        },
//	    }},
//	}
//
//	owner := core.NewOwner()
//	app, err := owner.Mount(root)
//
// # Construction order
//
// Each component is constructed in one synchronous pass: the parent link is
// set, BeforeCreate runs, injections are resolved and installed, data is
// defined, the provide source is evaluated, Created runs, and then children
// are constructed depth-first. A parent has therefore always provided before
// any descendant resolves.
//
// Resolution is not reactive. A component resolves once, at construction;
// later changes to an ancestor's provided map do not reach it. The installed
// values are ordinary reactive properties, so writes to them notify watchers.
//
// # Diagnostics
//
// An injection that no ancestor provides is not an error: it is left out and
// a warning naming the injection and the component is reported. In debug mode
// (see [DebugMode] and [WithDebug]) a write to an injected property reports a
// warning but still takes effect.
//
// # Deep conversion
//
// Injected values are owned by the providing ancestor and are installed with
// deep conversion suppressed, so a map injected into a component stays the
// exact map the ancestor provided. Data values are converted.
package core
