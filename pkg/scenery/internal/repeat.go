package internal

import (
	"time"

	"github.com/BrandonKowalski/scenery/pkg/scenery/constants"
)

// Repeater tracks held inputs and decides when a held input fires again.
// Embed one per input source to get consistent auto-repeat across hosts.
type Repeater[K comparable] struct {
	held           map[K]bool
	order          []K // press order; the newest held key repeats
	lastRepeatTime time.Time
	repeatDelay    time.Duration
	repeatInterval time.Duration
	hasRepeated    bool
	now            func() time.Time
}

// NewRepeater creates a Repeater with default timing.
func NewRepeater[K comparable]() *Repeater[K] {
	return NewRepeaterWithTiming[K](constants.DefaultRepeatDelay, constants.DefaultRepeatInterval)
}

// NewRepeaterWithTiming creates a Repeater with custom timing.
func NewRepeaterWithTiming[K comparable](delay, interval time.Duration) *Repeater[K] {
	return &Repeater[K]{
		held:           make(map[K]bool),
		repeatDelay:    delay,
		repeatInterval: interval,
		lastRepeatTime: time.Now(),
		now:            time.Now,
	}
}

// SetClock overrides the time source. Used by tests.
func (r *Repeater[K]) SetClock(now func() time.Time) {
	r.now = now
	r.lastRepeatTime = now()
}

// SetHeld updates the held state of key.
func (r *Repeater[K]) SetHeld(key K, held bool) {
	if held {
		if !r.held[key] {
			r.held[key] = true
			r.order = append(r.order, key)
			r.lastRepeatTime = r.now()
			r.hasRepeated = false
		}
		return
	}

	if !r.held[key] {
		return
	}
	delete(r.held, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.hasRepeated = false
	r.lastRepeatTime = r.now()
}

// IsHeld returns true if any key is currently held.
func (r *Repeater[K]) IsHeld() bool {
	return len(r.order) > 0
}

// Held returns the most recently pressed key that is still held.
func (r *Repeater[K]) Held() (K, bool) {
	var zero K
	if len(r.order) == 0 {
		return zero, false
	}
	return r.order[len(r.order)-1], true
}

// Update checks if a repeat should fire based on timing.
// Call this every frame or poll tick.
//
// The first repeat occurs after repeatDelay, subsequent repeats after repeatInterval.
func (r *Repeater[K]) Update() (K, bool) {
	var zero K
	if !r.IsHeld() {
		r.lastRepeatTime = r.now()
		r.hasRepeated = false
		return zero, false
	}

	threshold := r.repeatInterval
	if !r.hasRepeated {
		threshold = r.repeatDelay
	}

	if r.now().Sub(r.lastRepeatTime) >= threshold {
		r.lastRepeatTime = r.now()
		r.hasRepeated = true
		return r.Held()
	}

	return zero, false
}

// Reset clears all held keys and timing state.
func (r *Repeater[K]) Reset() {
	r.held = make(map[K]bool)
	r.order = r.order[:0]
	r.hasRepeated = false
	r.lastRepeatTime = r.now()
}
