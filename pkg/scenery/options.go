package scenery

import "github.com/BrandonKowalski/scenery/pkg/scenery/constants"

// PreTransitionFunc runs before every transition. It must call proceed exactly
// once, either before returning or later from any goroutine. Returning an
// error aborts the transition without touching navigator state.
//
// A hook that never calls proceed suspends that transition forever. The
// navigator applies no timeout.
type PreTransitionFunc func(req Request, proceed Proceed, evt *Event) error

// PostTransitionFunc runs after every committed transition.
type PostTransitionFunc func(res Result, evt *Event) error

// Selectors name the elements wired into the navigator. Empty fields take
// the defaults from the constants package.
type Selectors struct {
	Scene string
	Next  string
	Prev  string
	Reset string
	Goto  string
	Pop   string
}

// Options configures a Navigator. Every field is optional.
type Options struct {
	ActiveClass    string             // Class toggled on the active scene (default "active")
	DataKey        string             // Dataset key read by goto triggers (default "sceneIndex")
	InitialIndex   int                // Starting scene and reset target
	PreTransition  PreTransitionFunc  // Veto/redirect hook (default proceeds immediately)
	PostTransition PostTransitionFunc // Observation hook (default no-op)
	Selectors      Selectors
}

func proceedImmediately(_ Request, proceed Proceed, _ *Event) error {
	return proceed(Continue())
}

func noopPostTransition(Result, *Event) error {
	return nil
}

// withDefaults returns a fully populated copy of o.
func (o Options) withDefaults() Options {
	if o.ActiveClass == "" {
		o.ActiveClass = constants.DefaultActiveClass
	}
	if o.DataKey == "" {
		o.DataKey = constants.DefaultDataKey
	}
	if o.PreTransition == nil {
		o.PreTransition = proceedImmediately
	}
	if o.PostTransition == nil {
		o.PostTransition = noopPostTransition
	}
	o.Selectors = o.Selectors.WithDefaults()
	return o
}

// WithDefaults returns a copy of s with empty fields set to the default
// selectors.
func (s Selectors) WithDefaults() Selectors {
	if s.Scene == "" {
		s.Scene = constants.DefaultSceneSelector
	}
	if s.Next == "" {
		s.Next = constants.DefaultNextSelector
	}
	if s.Prev == "" {
		s.Prev = constants.DefaultPrevSelector
	}
	if s.Reset == "" {
		s.Reset = constants.DefaultResetSelector
	}
	if s.Goto == "" {
		s.Goto = constants.DefaultGotoSelector
	}
	if s.Pop == "" {
		s.Pop = constants.DefaultPopSelector
	}
	return s
}

// For returns the selector bound to a trigger group.
func (s Selectors) For(t Trigger) string {
	switch t {
	case TriggerNext:
		return s.Next
	case TriggerPrev:
		return s.Prev
	case TriggerReset:
		return s.Reset
	case TriggerGoto:
		return s.Goto
	case TriggerPop:
		return s.Pop
	default:
		return ""
	}
}

// ChainPostTransitions runs hooks in order and stops at the first error.
func ChainPostTransitions(hooks ...PostTransitionFunc) PostTransitionFunc {
	return func(res Result, evt *Event) error {
		for _, h := range hooks {
			if h == nil {
				continue
			}
			if err := h(res, evt); err != nil {
				return err
			}
		}
		return nil
	}
}
