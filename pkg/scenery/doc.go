// Package scenery manages transitions between mutually exclusive scenes,
// such as slides in a presentation or steps in a wizard.
//
// A Navigator owns the active scene index and a navigation history. Every
// transition runs the same sequence: the pre-transition hook decides, the
// previous scene loses the active class, the new scene gains it, the index
// is committed to history, and the post-transition hook observes the result.
//
// # Basic Usage
//
//	doc, _ := dom.ParseString(markup)
//
//	nav, err := scenery.New(doc, scenery.Options{
//	    PreTransition: func(req scenery.Request, proceed scenery.Proceed, _ *scenery.Event) error {
//	        if next, ok := req.Next.Get(); ok && next > 1 && !accepted {
//	            return proceed(scenery.Redirect(req.Current)) // veto
//	        }
//	        return proceed(scenery.Continue())
//	    },
//	    PostTransition: func(res scenery.Result, _ *scenery.Event) error {
//	        fmt.Println(res.Previous, "->", res.Current)
//	        return nil
//	    },
//	})
//
// Elements matching the trigger selectors (.scene__next, .scene__prev,
// .scene__reset, .scene__goto, .scene__pop) are wired at construction. The
// target index is computed when the element is clicked.
//
// # Indices
//
// Targets are clamped into [0, N-1]. An absent target (a goto element
// without a numeric data-scene-index) lands on index 0.
//
// # Deferred Decisions
//
// The pre-transition hook may return without calling proceed and call it
// later, for example after a confirmation dialog. The Transition returned by
// TransitionTo stays pending until then. The navigator never times out a
// pending transition, and overlapping transitions are not serialized: two
// pending transitions commit in whatever order their hooks proceed.
package scenery
