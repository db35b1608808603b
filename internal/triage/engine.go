package triage

import (
	"context"
	"fmt"

	"github.com/lewtec/triagem/internal/domain"
)

// Engine orchestrates triage decisions against the session store and
// the swipe history. It is not safe for concurrent use: the caller (the
// presentation layer) serializes input, per the product's interaction
// model.
type Engine struct {
	source   domain.Source
	feedback domain.Feedback

	store   *Store
	history *History

	active    domain.Category
	hasActive bool
}

// NewEngine creates an engine over an image source. feedback may be nil.
func NewEngine(source domain.Source, feedback domain.Feedback) *Engine {
	return &Engine{
		source:   source,
		feedback: feedback,
		store:    NewStore(),
		history:  NewHistory(),
	}
}

// Store exposes the session store, for the review flow.
func (e *Engine) Store() *Store {
	return e.store
}

// History exposes the swipe history, so callers can disable the undo
// affordance when it is empty.
func (e *Engine) History() *History {
	return e.history
}

// ActiveCategory returns the category currently being triaged.
func (e *Engine) ActiveCategory() (domain.Category, bool) {
	return e.active, e.hasActive
}

// SwitchCategory saves the outgoing category's cursor, makes to the
// active category, and lazily creates or resumes its session. The image
// list is fetched only on first visit.
func (e *Engine) SwitchCategory(ctx context.Context, to domain.Category) (*Session, error) {
	if e.hasActive {
		if cur, ok := e.store.Get(e.active); ok {
			e.store.SaveCursor(e.active, cur.Cursor)
		}
	}
	s, err := e.store.GetOrCreate(to, func() ([]domain.Image, error) {
		images, err := e.source.Fetch(ctx, to)
		if err != nil {
			return nil, fmt.Errorf("while fetching images for category %s: %w", to, err)
		}
		return images, nil
	})
	if err != nil {
		return nil, err
	}
	e.active = to
	e.hasActive = true
	return s, nil
}

// Decide commits a keep/delete decision for the next undecided image of
// category. It returns true when the decision exhausted the category,
// signalling the caller to open the review flow. Deciding against an
// exhausted session fails with domain.ErrExhausted; a category without
// a session fails with domain.ErrNoSession.
func (e *Engine) Decide(category domain.Category, decision domain.Decision) (exhausted bool, err error) {
	s, ok := e.store.Get(category)
	if !ok {
		return false, fmt.Errorf("%w: %s", domain.ErrNoSession, category)
	}
	img, ok := s.Current()
	if !ok {
		return false, fmt.Errorf("%w: %s", domain.ErrExhausted, category)
	}

	switch decision {
	case domain.DecisionKeep:
		s.Kept++
	case domain.DecisionDelete:
		s.Deleted++
		s.stage(img)
	default:
		return false, fmt.Errorf("unknown decision %d", decision)
	}

	e.history.Push(Entry{
		Category:     category,
		Image:        img,
		Decision:     decision,
		CursorBefore: s.Cursor,
	})
	s.Cursor++

	if e.feedback != nil {
		e.feedback.DecisionCommitted(img, decision)
	}
	return s.Exhausted(), nil
}

// Undo reverses the most recent committed decision, whichever category
// it belongs to: the cursor goes back to exactly its pre-decision
// value, the matching counter is decremented, and a staged deletion is
// unstaged. With an empty history Undo is a no-op returning false.
func (e *Engine) Undo() (Entry, bool) {
	entry, ok := e.history.Pop()
	if !ok {
		return Entry{}, false
	}
	s, ok := e.store.Get(entry.Category)
	if !ok {
		// Session gone only on teardown; nothing left to reverse.
		return entry, true
	}

	s.Cursor = entry.CursorBefore
	switch entry.Decision {
	case domain.DecisionKeep:
		if s.Kept > 0 {
			s.Kept--
		}
	case domain.DecisionDelete:
		s.unstage(entry.Image.SHA256)
		if s.Deleted > 0 {
			s.Deleted--
		}
	}

	if e.feedback != nil {
		e.feedback.DecisionReverted(entry.Image, entry.Decision)
	}
	return entry, true
}
