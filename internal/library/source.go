// Package library implements the triage collaborators over the local
// image library: the SQLite index supplies category listings, and a
// billy filesystem holds the image files themselves.
package library

import (
	"context"
	"fmt"

	"github.com/lewtec/triagem/internal/domain"
)

// DefaultFetchLimit caps the snapshot size of the screenshots, recents
// and random categories. Year and month categories are uncapped.
const DefaultFetchLimit = 100

// Source implements domain.Source over the library repository.
type Source struct {
	repo  domain.LibraryRepository
	limit int
}

// NewSource creates a Source. limit <= 0 selects DefaultFetchLimit.
func NewSource(repo domain.LibraryRepository, limit int) *Source {
	if limit <= 0 {
		limit = DefaultFetchLimit
	}
	return &Source{repo: repo, limit: limit}
}

// Fetch returns the ordered image list for category, newest first.
func (s *Source) Fetch(ctx context.Context, category domain.Category) ([]domain.Image, error) {
	switch category.Kind {
	case domain.KindScreenshots:
		return s.repo.ListBySource(ctx, domain.SourceScreenshot, s.limit)
	case domain.KindRecents:
		return s.repo.ListRecent(ctx, s.limit)
	case domain.KindRandom:
		return s.repo.ListRandom(ctx, s.limit)
	case domain.KindYear:
		return s.repo.ListByYear(ctx, category.Year)
	case domain.KindMonth:
		return s.repo.ListByMonth(ctx, category.Year, category.Month)
	}
	return nil, fmt.Errorf("%w: kind %d", domain.ErrInvalidCategory, category.Kind)
}

// Verify that Source implements domain.Source
var _ domain.Source = (*Source)(nil)
