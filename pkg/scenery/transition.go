package scenery

import (
	"context"
	"sync"

	"go.uber.org/atomic"
)

// Transition tracks one TransitionTo call from request to commit.
type Transition struct {
	nav *Navigator
	req Request
	pop bool
	evt *Event

	proceeded atomic.Bool

	mu       sync.Mutex
	inHook   bool
	aborted  bool
	decision *Decision

	done      chan struct{}
	result    Result
	committed bool
	err       error
}

func newTransition(n *Navigator, req Request, pop bool, evt *Event) *Transition {
	return &Transition{
		nav:  n,
		req:  req,
		pop:  pop,
		evt:  evt,
		done: make(chan struct{}),
	}
}

// proceed is the Proceed handed to the pre-transition hook. A call made while
// the hook is still running is held until the hook returns cleanly.
func (t *Transition) proceed(d Decision) error {
	if !t.proceeded.CompareAndSwap(false, true) {
		return ErrAlreadyProceeded
	}

	t.mu.Lock()
	if t.aborted {
		t.mu.Unlock()
		return ErrTransitionAborted
	}
	if t.inHook {
		t.decision = &d
		t.mu.Unlock()
		return nil
	}
	t.mu.Unlock()

	return t.commit(d)
}

func (t *Transition) commit(d Decision) error {
	res, err := t.nav.commit(t.req, d, t.pop, t.evt)
	t.finish(res, true, err)
	return err
}

func (t *Transition) finish(res Result, committed bool, err error) {
	t.mu.Lock()
	t.result = res
	t.committed = committed
	t.err = err
	t.mu.Unlock()

	t.nav.pending.Dec()
	close(t.done)
}

// Request returns the snapshot the pre-transition hook received.
func (t *Transition) Request() Request {
	return t.req
}

// Done is closed once the transition has committed or been aborted.
func (t *Transition) Done() <-chan struct{} {
	return t.done
}

// Committed reports whether navigator state was changed by this transition.
func (t *Transition) Committed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.committed
}

// Result returns the committed snapshot; ok is false until the commit.
func (t *Transition) Result() (res Result, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.result, t.committed
}

// Err returns the hook failure, if any.
func (t *Transition) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Wait blocks until the transition finishes or ctx is done. Giving up on the
// wait does not cancel the transition.
func (t *Transition) Wait(ctx context.Context) (Result, error) {
	select {
	case <-t.done:
		t.mu.Lock()
		defer t.mu.Unlock()
		return t.result, t.err
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}
