package triage

import "github.com/lewtec/triagem/internal/domain"

// Entry is one committed decision. CursorBefore is the cursor value at
// the moment the decision was made, so undo can restore it without
// recomputing anything.
type Entry struct {
	Category     domain.Category
	Image        domain.Image
	Decision     domain.Decision
	CursorBefore int
}

// History is the global swipe-history stack, shared across all
// categories and ordered by commit time.
type History struct {
	entries []Entry
}

// NewHistory creates an empty history stack.
func NewHistory() *History {
	return &History{}
}

// Push appends a committed decision.
func (h *History) Push(e Entry) {
	h.entries = append(h.entries, e)
}

// Pop removes and returns the most recent entry. Returns false when the
// stack is empty.
func (h *History) Pop() (Entry, bool) {
	if len(h.entries) == 0 {
		return Entry{}, false
	}
	e := h.entries[len(h.entries)-1]
	h.entries = h.entries[:len(h.entries)-1]
	return e, true
}

// Peek returns the most recent entry without removing it.
func (h *History) Peek() (Entry, bool) {
	if len(h.entries) == 0 {
		return Entry{}, false
	}
	return h.entries[len(h.entries)-1], true
}

// Len returns the number of undoable decisions.
func (h *History) Len() int {
	return len(h.entries)
}
