package library

import (
	"context"
	"errors"
	"testing"

	"github.com/lewtec/triagem/internal/domain"
)

// recordingRepo records which listing method was called and with what
// arguments. Only the listing methods matter here.
type recordingRepo struct {
	domain.LibraryRepository

	method string
	source string
	limit  int
	year   int
	month  int
}

func (r *recordingRepo) ListBySource(_ context.Context, source string, limit int) ([]domain.Image, error) {
	r.method, r.source, r.limit = "ListBySource", source, limit
	return nil, nil
}

func (r *recordingRepo) ListRecent(_ context.Context, limit int) ([]domain.Image, error) {
	r.method, r.limit = "ListRecent", limit
	return nil, nil
}

func (r *recordingRepo) ListRandom(_ context.Context, limit int) ([]domain.Image, error) {
	r.method, r.limit = "ListRandom", limit
	return nil, nil
}

func (r *recordingRepo) ListByYear(_ context.Context, year int) ([]domain.Image, error) {
	r.method, r.year = "ListByYear", year
	return nil, nil
}

func (r *recordingRepo) ListByMonth(_ context.Context, year, month int) ([]domain.Image, error) {
	r.method, r.year, r.month = "ListByMonth", year, month
	return nil, nil
}

func TestSource_Fetch(t *testing.T) {
	ctx := context.Background()

	t.Run("screenshots go through the source listing with the cap", func(t *testing.T) {
		repo := &recordingRepo{}
		src := NewSource(repo, 0)

		if _, err := src.Fetch(ctx, domain.Screenshots); err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
		if repo.method != "ListBySource" || repo.source != domain.SourceScreenshot {
			t.Errorf("routed to %s(%s), want ListBySource(screenshot)", repo.method, repo.source)
		}
		if repo.limit != DefaultFetchLimit {
			t.Errorf("limit = %d, want %d", repo.limit, DefaultFetchLimit)
		}
	})

	t.Run("recents and random are capped too", func(t *testing.T) {
		repo := &recordingRepo{}
		src := NewSource(repo, 25)

		src.Fetch(ctx, domain.Recents)
		if repo.method != "ListRecent" || repo.limit != 25 {
			t.Errorf("routed to %s(limit=%d), want ListRecent(25)", repo.method, repo.limit)
		}

		src.Fetch(ctx, domain.Random)
		if repo.method != "ListRandom" || repo.limit != 25 {
			t.Errorf("routed to %s(limit=%d), want ListRandom(25)", repo.method, repo.limit)
		}
	})

	t.Run("year and month pass the range straight through", func(t *testing.T) {
		repo := &recordingRepo{}
		src := NewSource(repo, 0)

		year, err := domain.YearCategory(2021)
		if err != nil {
			t.Fatalf("YearCategory() error = %v", err)
		}
		src.Fetch(ctx, year)
		if repo.method != "ListByYear" || repo.year != 2021 {
			t.Errorf("routed to %s(%d), want ListByYear(2021)", repo.method, repo.year)
		}

		month, err := domain.MonthCategory(2021, 7)
		if err != nil {
			t.Fatalf("MonthCategory() error = %v", err)
		}
		src.Fetch(ctx, month)
		if repo.method != "ListByMonth" || repo.year != 2021 || repo.month != 7 {
			t.Errorf("routed to %s(%d, %d), want ListByMonth(2021, 7)", repo.method, repo.year, repo.month)
		}
	})

	t.Run("unknown kind is rejected", func(t *testing.T) {
		src := NewSource(&recordingRepo{}, 0)

		_, err := src.Fetch(ctx, domain.Category{})
		if !errors.Is(err, domain.ErrInvalidCategory) {
			t.Errorf("Fetch() error = %v, want ErrInvalidCategory", err)
		}
	})
}
