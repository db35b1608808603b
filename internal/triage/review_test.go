package triage

import (
	"context"
	"errors"
	"testing"

	"github.com/lewtec/triagem/internal/domain"
)

// fakeBackend records batches and can be told to fail. inFlight, when
// set, runs in the middle of the flush, standing in for work that
// arrives while the backend call is pending.
type fakeBackend struct {
	batches  [][]domain.Image
	err      error
	inFlight func()
}

func (b *fakeBackend) DeletePermanently(_ context.Context, images []domain.Image) error {
	if b.inFlight != nil {
		b.inFlight()
	}
	if b.err != nil {
		return b.err
	}
	batch := make([]domain.Image, len(images))
	copy(batch, images)
	b.batches = append(b.batches, batch)
	return nil
}

func setupReviewSession(t *testing.T, hashes ...string) (*Engine, *Session) {
	t.Helper()
	source := newFakeSource()
	source.images[domain.Recents] = testImages(hashes...)
	engine := NewEngine(source, nil)
	s, err := engine.SwitchCategory(context.Background(), domain.Recents)
	if err != nil {
		t.Fatalf("SwitchCategory() error = %v", err)
	}
	for range hashes {
		if _, err := engine.Decide(domain.Recents, domain.DecisionDelete); err != nil {
			t.Fatalf("Decide() error = %v", err)
		}
	}
	return engine, s
}

func TestReviewer_Restore(t *testing.T) {
	t.Run("removes staged handle without touching counters", func(t *testing.T) {
		engine, s := setupReviewSession(t, "a", "b")
		reviewer := NewReviewer(engine.Store(), &fakeBackend{})

		if err := reviewer.Restore(domain.Recents, "a"); err != nil {
			t.Fatalf("Restore() error = %v", err)
		}

		if staged := s.StagedDeletions(); len(staged) != 1 || staged[0].SHA256 != "b" {
			t.Errorf("StagedDeletions() = %v, want [b]", staged)
		}
		if s.Deleted != 2 {
			t.Errorf("Deleted = %d, want 2 (tally unchanged by restore)", s.Deleted)
		}
		if s.Cursor != 2 {
			t.Errorf("Cursor = %d, want 2 (unchanged by restore)", s.Cursor)
		}
	})

	t.Run("unknown handle is a silent no-op", func(t *testing.T) {
		engine, s := setupReviewSession(t, "a")
		reviewer := NewReviewer(engine.Store(), &fakeBackend{})
		if err := reviewer.Restore(domain.Recents, "missing"); err != nil {
			t.Fatalf("Restore() error = %v", err)
		}
		if len(s.StagedDeletions()) != 1 {
			t.Errorf("StagedDeletions() = %v, want [a]", s.StagedDeletions())
		}
	})

	t.Run("unknown category fails", func(t *testing.T) {
		engine, _ := setupReviewSession(t, "a")
		reviewer := NewReviewer(engine.Store(), &fakeBackend{})
		if err := reviewer.Restore(domain.Screenshots, "a"); !errors.Is(err, domain.ErrNoSession) {
			t.Errorf("Restore() error = %v, want ErrNoSession", err)
		}
	})
}

func TestReviewer_ConfirmPermanentDeletion(t *testing.T) {
	ctx := context.Background()

	t.Run("empty staged set never calls the backend", func(t *testing.T) {
		source := newFakeSource()
		source.images[domain.Recents] = testImages("a")
		engine := NewEngine(source, nil)
		engine.SwitchCategory(ctx, domain.Recents)
		engine.Decide(domain.Recents, domain.DecisionKeep)

		backend := &fakeBackend{}
		reviewer := NewReviewer(engine.Store(), backend)

		n, err := reviewer.ConfirmPermanentDeletion(ctx, domain.Recents)
		if err != nil {
			t.Fatalf("ConfirmPermanentDeletion() error = %v", err)
		}
		if n != 0 {
			t.Errorf("ConfirmPermanentDeletion() = %d, want 0", n)
		}
		if len(backend.batches) != 0 {
			t.Errorf("backend received %d batches, want 0", len(backend.batches))
		}
	})

	t.Run("exhausting with only keeps completes the category", func(t *testing.T) {
		source := newFakeSource()
		source.images[domain.Recents] = testImages("a", "b")
		engine := NewEngine(source, nil)
		s, err := engine.SwitchCategory(ctx, domain.Recents)
		if err != nil {
			t.Fatalf("SwitchCategory() error = %v", err)
		}
		engine.Decide(domain.Recents, domain.DecisionKeep)
		engine.Decide(domain.Recents, domain.DecisionKeep)

		backend := &fakeBackend{}
		reviewer := NewReviewer(engine.Store(), backend)

		n, err := reviewer.ConfirmPermanentDeletion(ctx, domain.Recents)
		if err != nil {
			t.Fatalf("ConfirmPermanentDeletion() error = %v", err)
		}
		if n != 0 {
			t.Errorf("ConfirmPermanentDeletion() = %d, want 0", n)
		}
		if len(backend.batches) != 0 {
			t.Errorf("backend received %d batches, want 0", len(backend.batches))
		}
		if !s.Completed {
			t.Error("Completed = false after exhaustion with nothing staged, want true")
		}
	})

	t.Run("empty staged set mid-category does not complete it", func(t *testing.T) {
		source := newFakeSource()
		source.images[domain.Recents] = testImages("a", "b")
		engine := NewEngine(source, nil)
		s, err := engine.SwitchCategory(ctx, domain.Recents)
		if err != nil {
			t.Fatalf("SwitchCategory() error = %v", err)
		}
		engine.Decide(domain.Recents, domain.DecisionKeep)

		reviewer := NewReviewer(engine.Store(), &fakeBackend{})
		if n, err := reviewer.ConfirmPermanentDeletion(ctx, domain.Recents); err != nil || n != 0 {
			t.Fatalf("ConfirmPermanentDeletion() = (%d, %v), want (0, nil)", n, err)
		}
		if s.Completed {
			t.Error("Completed = true with undecided images left, want false")
		}
	})

	t.Run("flushes the whole batch and completes the category", func(t *testing.T) {
		engine, s := setupReviewSession(t, "a", "b", "c")
		backend := &fakeBackend{}
		reviewer := NewReviewer(engine.Store(), backend)

		n, err := reviewer.ConfirmPermanentDeletion(ctx, domain.Recents)
		if err != nil {
			t.Fatalf("ConfirmPermanentDeletion() error = %v", err)
		}
		if n != 3 {
			t.Errorf("ConfirmPermanentDeletion() = %d, want 3", n)
		}
		if len(backend.batches) != 1 || len(backend.batches[0]) != 3 {
			t.Errorf("backend batches = %v, want one batch of 3", backend.batches)
		}
		if !s.Completed {
			t.Error("Completed = false, want true after flush")
		}
		if len(s.StagedDeletions()) != 0 {
			t.Errorf("StagedDeletions() = %v, want empty", s.StagedDeletions())
		}
	})

	t.Run("backend failure preserves staged list", func(t *testing.T) {
		engine, s := setupReviewSession(t, "a", "b")
		backend := &fakeBackend{err: errors.New("disk gone")}
		reviewer := NewReviewer(engine.Store(), backend)

		_, err := reviewer.ConfirmPermanentDeletion(ctx, domain.Recents)
		var delErr *domain.DeletionError
		if !errors.As(err, &delErr) {
			t.Fatalf("ConfirmPermanentDeletion() error = %v, want *DeletionError", err)
		}
		if len(s.StagedDeletions()) != 2 {
			t.Errorf("StagedDeletions() = %v, want untouched pair", s.StagedDeletions())
		}
		if s.Completed {
			t.Error("Completed = true, want false after failed flush")
		}

		// Retry is a plain repeat call.
		backend.err = nil
		n, err := reviewer.ConfirmPermanentDeletion(ctx, domain.Recents)
		if err != nil || n != 2 {
			t.Errorf("retry = (%d, %v), want (2, nil)", n, err)
		}
	})

	t.Run("restore is rejected while a flush is pending", func(t *testing.T) {
		engine, s := setupReviewSession(t, "a", "b")
		backend := &fakeBackend{}
		reviewer := NewReviewer(engine.Store(), backend)

		var restoreErr error
		backend.inFlight = func() {
			restoreErr = reviewer.Restore(domain.Recents, "a")
		}

		n, err := reviewer.ConfirmPermanentDeletion(ctx, domain.Recents)
		if err != nil || n != 2 {
			t.Fatalf("ConfirmPermanentDeletion() = (%d, %v), want (2, nil)", n, err)
		}
		if !errors.Is(restoreErr, domain.ErrFlushPending) {
			t.Errorf("Restore() during flush error = %v, want ErrFlushPending", restoreErr)
		}
		if len(s.StagedDeletions()) != 0 {
			t.Errorf("StagedDeletions() = %v, want empty after flush", s.StagedDeletions())
		}
	})
}
