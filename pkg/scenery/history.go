package scenery

// History is the navigation log of committed scene indices.
// It only grows through commits and only shrinks through Pop.
type History struct {
	entries []int
}

// NewHistory creates a history seeded with the given indices.
func NewHistory(seed ...int) *History {
	h := &History{
		entries: make([]int, 0, len(seed)+8),
	}
	h.entries = append(h.entries, seed...)
	return h
}

// Push records a committed index.
func (h *History) Push(index int) {
	h.entries = append(h.entries, index)
}

// Pop removes and returns the newest entry.
// Returns false if the history is empty.
func (h *History) Pop() (int, bool) {
	if len(h.entries) == 0 {
		return 0, false
	}
	top := h.entries[len(h.entries)-1]
	h.entries = h.entries[:len(h.entries)-1]
	return top, true
}

// Peek returns the newest entry without removing it.
func (h *History) Peek() (int, bool) {
	if len(h.entries) == 0 {
		return 0, false
	}
	return h.entries[len(h.entries)-1], true
}

// Under returns the entry below the newest one, which is where a pop lands.
// Returns false if the history holds fewer than two entries.
func (h *History) Under() (int, bool) {
	if len(h.entries) < 2 {
		return 0, false
	}
	return h.entries[len(h.entries)-2], true
}

// IsEmpty returns true if the history has no entries.
func (h *History) IsEmpty() bool {
	return len(h.entries) == 0
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Entries returns a copy of the entries, oldest first.
func (h *History) Entries() []int {
	out := make([]int, len(h.entries))
	copy(out, h.entries)
	return out
}
