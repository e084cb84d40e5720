package scenery

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/BrandonKowalski/scenery/pkg/scenery/constants"
	"github.com/BrandonKowalski/scenery/pkg/scenery/internal"
	"go.uber.org/atomic"
)

// Navigator owns the active scene index and navigation history of a fixed
// set of scenes, and runs every transition through the configured hooks.
type Navigator struct {
	opts   Options
	scenes []Element

	mu      sync.Mutex // guards active and history
	active  int
	history *History

	pending atomic.Int64
	log     *slog.Logger
}

// New resolves the scenes and trigger groups in doc and wires them up.
// The document is queried once: elements added later are not picked up.
func New(doc Document, opts Options) (*Navigator, error) {
	opts = opts.withDefaults()

	scenes, err := doc.QueryAll(opts.Selectors.Scene)
	if err != nil {
		return nil, NewConfigurationError("resolve_scenes", err)
	}
	if len(scenes) == 0 {
		return nil, NewConfigurationError("resolve_scenes", fmt.Errorf("%w for %q", ErrNoScenes, opts.Selectors.Scene))
	}
	if opts.InitialIndex < 0 || opts.InitialIndex >= len(scenes) {
		return nil, NewConfigurationError("validate_initial_index",
			fmt.Errorf("%w: %d not in [0, %d)", ErrInitialIndexOutOfRange, opts.InitialIndex, len(scenes)))
	}

	n := &Navigator{
		opts:    opts,
		scenes:  scenes,
		active:  opts.InitialIndex,
		history: NewHistory(opts.InitialIndex),
		log:     internal.GetInternalLogger(),
	}

	n.scenes[n.active].AddClass(opts.ActiveClass)

	for _, t := range Triggers {
		selector := opts.Selectors.For(t)
		elements, err := doc.QueryAll(selector)
		if err != nil {
			return nil, NewConfigurationError("bind_"+t.String(), err)
		}
		for _, el := range elements {
			el.OnClick(n.clickHandler(t, el))
		}
		n.log.Debug("Bound trigger group", "trigger", t.String(), "selector", selector, "elements", len(elements))
	}

	return n, nil
}

func (n *Navigator) clickHandler(t Trigger, el Element) func(*Event) error {
	return func(evt *Event) error {
		if evt == nil {
			evt = &Event{Source: "click"}
		}
		evt.Trigger = t
		evt.Target = el
		_, err := n.Fire(t, evt)
		return err
	}
}

// Fire computes the target for a trigger group and transitions to it.
// For TriggerGoto the target is read from evt.Target's data.
func (n *Navigator) Fire(t Trigger, evt *Event) (*Transition, error) {
	var el Element
	if evt != nil {
		el = evt.Target
	}
	return n.transition(n.target(t, el), t == TriggerPop, evt)
}

// target is evaluated when the trigger fires, never at bind time.
func (n *Navigator) target(t Trigger, el Element) Index {
	switch t {
	case TriggerNext:
		return Some(n.ActiveIndex() + 1)
	case TriggerPrev:
		return Some(n.ActiveIndex() - 1)
	case TriggerReset:
		return Some(n.opts.InitialIndex)
	case TriggerGoto:
		if el == nil {
			return None()
		}
		raw, ok := el.Data(n.opts.DataKey)
		if !ok {
			return None()
		}
		return ParseIndex(raw)
	case TriggerPop:
		n.mu.Lock()
		defer n.mu.Unlock()
		// History is only popped by the commit. With a single entry the pop
		// lands on the initial index.
		if under, ok := n.history.Under(); ok {
			return Some(under)
		}
		return Some(n.opts.InitialIndex)
	default:
		return None()
	}
}

// Next moves to the following scene, clamped at the last one.
func (n *Navigator) Next(evt *Event) (*Transition, error) {
	return n.Fire(TriggerNext, evt)
}

// Prev moves to the preceding scene, clamped at the first one.
func (n *Navigator) Prev(evt *Event) (*Transition, error) {
	return n.Fire(TriggerPrev, evt)
}

// Reset moves back to the initial scene. History is kept.
func (n *Navigator) Reset(evt *Event) (*Transition, error) {
	return n.Fire(TriggerReset, evt)
}

// Goto moves to index, clamped into range.
func (n *Navigator) Goto(index int, evt *Event) (*Transition, error) {
	return n.TransitionTo(Some(index), evt)
}

// Pop drops the newest history entry and returns to the one before it.
func (n *Navigator) Pop(evt *Event) (*Transition, error) {
	return n.Fire(TriggerPop, evt)
}

// TransitionTo runs the pre-transition hook and commits once it proceeds.
//
// When the hook proceeds before returning, the transition is complete when
// TransitionTo returns. Otherwise the returned Transition is pending until
// the hook's Proceed is called; it may never complete.
//
// A pre-hook error aborts with a *HookError and no state change. A post-hook
// error is returned as a *HookError after the commit.
func (n *Navigator) TransitionTo(requested Index, evt *Event) (*Transition, error) {
	return n.transition(requested, false, evt)
}

// transition runs a transition; pop drops the newest history entry in the
// same critical section as the commit.
func (n *Navigator) transition(requested Index, pop bool, evt *Event) (*Transition, error) {
	req := Request{Current: n.ActiveIndex(), Next: requested}
	t := newTransition(n, req, pop, evt)
	n.pending.Inc()

	t.inHook = true

	hookErr := safeCall(func() error {
		return n.opts.PreTransition(req, t.proceed, evt)
	})

	t.mu.Lock()
	t.inHook = false
	decision := t.decision
	if hookErr != nil {
		t.aborted = true
	}
	t.mu.Unlock()

	if hookErr != nil {
		err := &HookError{Phase: PhasePre, Err: hookErr}
		n.log.Debug("Transition aborted by pre-transition hook", "current", req.Current, "requested", req.Next.String(), "error", hookErr)
		t.finish(Result{}, false, err)
		return t, err
	}

	if decision != nil {
		return t, t.commit(*decision)
	}

	n.log.Debug("Transition suspended in pre-transition hook", "current", req.Current, "requested", req.Next.String())
	return t, nil
}

// commit applies a decision. It is the only place navigator state changes.
func (n *Navigator) commit(req Request, d Decision, pop bool, evt *Event) (Result, error) {
	resolved := d.Override()
	if !resolved.IsSome() {
		resolved = req.Next
	}

	n.mu.Lock()
	prev := n.active
	next := clamp(resolved, constants.FallbackIndex, len(n.scenes)-1)
	n.scenes[prev].RemoveClass(n.opts.ActiveClass)
	n.scenes[next].AddClass(n.opts.ActiveClass)
	n.active = next
	if pop {
		n.history.Pop()
	}
	n.history.Push(next)
	depth := n.history.Len()
	n.mu.Unlock()

	res := Result{Current: next, Previous: prev}
	n.log.Debug("Transition committed", "from", prev, "to", next, "resolved", resolved.String(), "history_depth", depth, "trigger", eventTrigger(evt))

	if err := safeCall(func() error { return n.opts.PostTransition(res, evt) }); err != nil {
		return res, &HookError{Phase: PhasePost, Err: err}
	}
	return res, nil
}

// ActiveIndex returns the index of the active scene.
func (n *Navigator) ActiveIndex() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.active
}

// History returns a copy of the navigation history, oldest first.
func (n *Navigator) History() []int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.history.Entries()
}

// Len returns the number of scenes.
func (n *Navigator) Len() int {
	return len(n.scenes)
}

// Scene returns the handle at index i.
func (n *Navigator) Scene(i int) Element {
	return n.scenes[i]
}

// Options returns the options with defaults applied.
func (n *Navigator) Options() Options {
	return n.opts
}

// Pending returns how many transitions are waiting on their pre-transition hook.
func (n *Navigator) Pending() int {
	return int(n.pending.Load())
}

func eventTrigger(evt *Event) string {
	if evt == nil {
		return TriggerNone.String()
	}
	return evt.Trigger.String()
}

func safeCall(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}
