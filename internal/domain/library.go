package domain

import "context"

// LibraryStats provides statistics about the image library.
type LibraryStats struct {
	TotalImages    int64
	CountsBySource map[string]int64
	CountsByYear   map[int]int64
}

// LibraryRepository defines the interface for the image library index.
type LibraryRepository interface {
	// Insert creates or refreshes an image record (upsert by hash)
	Insert(ctx context.Context, img Image) error

	// GetBySHA256 retrieves an image by its SHA256 hash
	GetBySHA256(ctx context.Context, sha256 string) (*Image, error)

	// ListBySource retrieves images with a source label, newest first.
	// A negative limit means no cap.
	ListBySource(ctx context.Context, source string, limit int) ([]Image, error)

	// ListRecent retrieves the newest images regardless of source
	ListRecent(ctx context.Context, limit int) ([]Image, error)

	// ListRandom retrieves images in stable pseudo-random order
	ListRandom(ctx context.Context, limit int) ([]Image, error)

	// ListByYear retrieves images created in a year, newest first
	ListByYear(ctx context.Context, year int) ([]Image, error)

	// ListByMonth retrieves images created in a month of a year, newest first
	ListByMonth(ctx context.Context, year, month int) ([]Image, error)

	// Years returns the distinct creation years present, newest first
	Years(ctx context.Context) ([]int, error)

	// Count returns the total number of images
	Count(ctx context.Context) (int64, error)

	// Stats returns library-wide counters
	Stats(ctx context.Context) (*LibraryStats, error)

	// DeleteBySHA256 removes image records in one transaction and
	// returns the number of rows removed
	DeleteBySHA256(ctx context.Context, hashes ...string) (int64, error)
}
