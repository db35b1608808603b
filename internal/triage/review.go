package triage

import (
	"context"
	"errors"
	"fmt"

	"github.com/lewtec/triagem/internal/domain"
)

// Reviewer operates on one category's staged-deletion list: restoring
// single images and flushing the whole batch to the deletion backend.
type Reviewer struct {
	store   *Store
	backend domain.DeletionBackend
}

// NewReviewer creates a reviewer over the engine's session store.
func NewReviewer(store *Store, backend domain.DeletionBackend) *Reviewer {
	return &Reviewer{store: store, backend: backend}
}

// Restore removes the handle from the category's staged-deletion list.
// The decision counters and the cursor are untouched: counters are a
// historical tally of decisions made, not of what is currently staged.
// Restoring an unknown handle is a no-op; restoring while a permanent
// deletion is in flight fails with domain.ErrFlushPending.
func (r *Reviewer) Restore(category domain.Category, sha256 string) error {
	s, ok := r.store.Get(category)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrNoSession, category)
	}
	if s.flushing {
		return domain.ErrFlushPending
	}
	s.unstage(sha256)
	return nil
}

// ConfirmPermanentDeletion sends the category's staged deletions to the
// backend as one batch. On success the staged list is cleared, the
// category is marked completed, and the number of images removed is
// returned. On backend failure the staged list is left untouched and a
// *domain.DeletionError surfaces, so the caller can retry or restore
// individually. An empty staged list returns 0 without touching the
// backend; if every image was already decided the category is marked
// completed, so an all-keeps run finishes like any other.
//
// The flush works on a local copy of the staged list; Restore is
// rejected for the category until the call resolves.
func (r *Reviewer) ConfirmPermanentDeletion(ctx context.Context, category domain.Category) (int, error) {
	s, ok := r.store.Get(category)
	if !ok {
		return 0, fmt.Errorf("%w: %s", domain.ErrNoSession, category)
	}
	if s.flushing {
		return 0, domain.ErrFlushPending
	}
	batch := s.StagedDeletions()
	if len(batch) == 0 {
		if s.Exhausted() {
			s.Completed = true
		}
		return 0, nil
	}

	s.flushing = true
	defer func() { s.flushing = false }()

	if err := r.backend.DeletePermanently(ctx, batch); err != nil {
		var delErr *domain.DeletionError
		if !errors.As(err, &delErr) {
			err = &domain.DeletionError{Detail: "backend error", Err: err}
		}
		return 0, err
	}

	s.staged = nil
	s.Completed = true
	return len(batch), nil
}
