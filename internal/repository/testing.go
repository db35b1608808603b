package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/lewtec/triagem/internal/domain"
)

// SetupTestDB creates an in-memory SQLite database for testing, with
// the real migrations applied.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	return db
}

// CleanupTestDB closes the test database
func CleanupTestDB(t *testing.T, db *sql.DB) {
	t.Helper()
	if err := db.Close(); err != nil {
		t.Errorf("failed to close test database: %v", err)
	}
}

// MustInsert inserts an image and fails the test if it errors
func MustInsert(t *testing.T, repo *LibraryRepository, sha256, source string, createdAt time.Time) domain.Image {
	t.Helper()
	img := domain.Image{
		SHA256:    sha256,
		Filename:  sha256 + ".png",
		Source:    source,
		CreatedAt: createdAt,
	}
	if err := repo.Insert(context.Background(), img); err != nil {
		t.Fatalf("failed to insert image %s: %v", sha256, err)
	}
	return img
}
