// Package triage implements the per-category triage state machine:
// session progress tracking, decision counters, the staged-deletion
// list with restore, and the global swipe-history undo stack. The
// package holds state in memory only and performs no I/O; the
// collaborators it needs are the interfaces in internal/domain.
package triage

import (
	"github.com/lewtec/triagem/internal/domain"
)

// Session is the mutable triage progress for one category. The image
// list is a snapshot taken when the session is first created and is
// fixed for the session's lifetime.
type Session struct {
	Category  domain.Category
	Images    []domain.Image
	Cursor    int
	Kept      int
	Deleted   int
	Completed bool

	staged   []domain.Image
	flushing bool
}

// Current returns the next undecided image, or false when the session
// is exhausted.
func (s *Session) Current() (domain.Image, bool) {
	if s.Exhausted() {
		return domain.Image{}, false
	}
	return s.Images[s.Cursor], true
}

// Exhausted reports whether every image in the snapshot has been decided.
func (s *Session) Exhausted() bool {
	return s.Cursor >= len(s.Images)
}

// Remaining returns the number of undecided images.
func (s *Session) Remaining() int {
	return len(s.Images) - s.Cursor
}

// StagedDeletions returns the images marked deleted but not yet
// permanently removed, in staging order.
func (s *Session) StagedDeletions() []domain.Image {
	out := make([]domain.Image, len(s.staged))
	copy(out, s.staged)
	return out
}

// stage appends img to the staged-deletion list. Duplicate handles are
// ignored so a replayed commit cannot double-stage.
func (s *Session) stage(img domain.Image) {
	for _, cur := range s.staged {
		if cur.SHA256 == img.SHA256 {
			return
		}
	}
	s.staged = append(s.staged, img)
}

// unstage removes the handle from the staged-deletion list. Removing an
// absent handle is a no-op.
func (s *Session) unstage(sha256 string) {
	for i, cur := range s.staged {
		if cur.SHA256 == sha256 {
			s.staged = append(s.staged[:i], s.staged[i+1:]...)
			return
		}
	}
}

// Store holds one Session per visited category, keyed by the category
// value itself.
type Store struct {
	sessions map[domain.Category]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[domain.Category]*Session)}
}

// GetOrCreate returns the existing session for category, or builds a
// fresh one from fetch. fetch is invoked only when no session exists
// yet; the image list of an existing session is never refreshed.
func (st *Store) GetOrCreate(category domain.Category, fetch func() ([]domain.Image, error)) (*Session, error) {
	if s, ok := st.sessions[category]; ok {
		return s, nil
	}
	images, err := fetch()
	if err != nil {
		return nil, err
	}
	s := &Session{Category: category, Images: images}
	st.sessions[category] = s
	return s, nil
}

// Get returns the session for category if one was created.
func (st *Store) Get(category domain.Category) (*Session, bool) {
	s, ok := st.sessions[category]
	return s, ok
}

// SaveCursor overwrites the stored cursor for category; used when the
// caller leaves a category mid-progress. Unknown categories are ignored.
func (st *Store) SaveCursor(category domain.Category, cursor int) {
	if s, ok := st.sessions[category]; ok {
		s.Cursor = cursor
	}
}
