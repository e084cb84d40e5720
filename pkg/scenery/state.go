package scenery

import (
	"fmt"
	"strconv"
	"strings"
)

// Index is an optional scene index. The zero value is None.
type Index struct {
	value int
	ok    bool
}

// Some wraps a concrete index.
func Some(i int) Index {
	return Index{value: i, ok: true}
}

// None is the absent index. It resolves to the fallback index when a
// transition commits.
func None() Index {
	return Index{}
}

// Get returns the wrapped index and whether one is present.
func (i Index) Get() (int, bool) {
	return i.value, i.ok
}

// IsSome reports whether an index is present.
func (i Index) IsSome() bool {
	return i.ok
}

// Or returns the wrapped index, or fallback when absent.
func (i Index) Or(fallback int) int {
	if i.ok {
		return i.value
	}
	return fallback
}

func (i Index) String() string {
	if !i.ok {
		return "none"
	}
	return strconv.Itoa(i.value)
}

// ParseIndex reads an integer index out of auxiliary element data.
// Empty or non-numeric input yields None.
func ParseIndex(raw string) Index {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return None()
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return None()
	}
	return Some(n)
}

// Decision is the answer a pre-transition hook hands to Proceed.
type Decision struct {
	override Index
}

// Continue proceeds with the proposed index.
func Continue() Decision {
	return Decision{}
}

// Redirect proceeds to index instead of the proposed one. Redirecting to the
// current index is a veto: nothing visible changes, but the transition still
// commits and is recorded in history.
func Redirect(index int) Decision {
	return Decision{override: Some(index)}
}

// Override returns the redirect target, if any.
func (d Decision) Override() Index {
	return d.override
}

// Proceed resumes a suspended transition. Only the first call counts;
// later calls return ErrAlreadyProceeded.
type Proceed func(Decision) error

// Request is the snapshot handed to the pre-transition hook.
type Request struct {
	Current int   // Active index when the transition was requested
	Next    Index // Proposed target, before clamping
}

// Result is the snapshot handed to the post-transition hook.
type Result struct {
	Current  int // Newly active index
	Previous int // Index that was active before the commit
}

func (r Result) String() string {
	return fmt.Sprintf("%d -> %d", r.Previous, r.Current)
}

// clamp snaps to into [0, max]. None resolves to fallback first.
func clamp(to Index, fallback, max int) int {
	v, ok := to.Get()
	if !ok {
		return fallback
	}
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
