package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lewtec/triagem/internal/domain"
)

// LibraryRepository implements domain.LibraryRepository over SQLite.
// Creation timestamps are stored as unix seconds, UTC.
type LibraryRepository struct {
	db *sql.DB
}

// NewLibraryRepository creates a new LibraryRepository.
func NewLibraryRepository(db *sql.DB) *LibraryRepository {
	return &LibraryRepository{db: db}
}

const imageColumns = "sha256, filename, source, created_at"

// Insert creates or refreshes an image record (upsert by hash).
func (r *LibraryRepository) Insert(ctx context.Context, img domain.Image) error {
	_, err := r.db.ExecContext(ctx, `
insert into images (sha256, filename, source, created_at) values (?, ?, ?, ?)
on conflict(sha256) do update set filename=excluded.filename, source=excluded.source, created_at=excluded.created_at
	`, img.SHA256, img.Filename, img.Source, img.CreatedAt.UTC().Unix())
	if err != nil {
		return fmt.Errorf("while inserting image '%s': %w", img.SHA256, err)
	}
	return nil
}

// GetBySHA256 retrieves an image by its SHA256 hash. A missing hash
// yields (nil, nil).
func (r *LibraryRepository) GetBySHA256(ctx context.Context, sha256 string) (*domain.Image, error) {
	row := r.db.QueryRowContext(ctx,
		"select "+imageColumns+" from images where sha256 = ?", sha256)
	img, err := scanImage(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &img, nil
}

// ListBySource retrieves images with a source label, newest first. A
// negative limit means no cap.
func (r *LibraryRepository) ListBySource(ctx context.Context, source string, limit int) ([]domain.Image, error) {
	return r.list(ctx,
		"select "+imageColumns+" from images where source = ? order by created_at desc limit ?",
		source, limitArg(limit))
}

// ListRecent retrieves the newest images regardless of source.
func (r *LibraryRepository) ListRecent(ctx context.Context, limit int) ([]domain.Image, error) {
	return r.list(ctx,
		"select "+imageColumns+" from images order by created_at desc limit ?",
		limitArg(limit))
}

// ListRandom retrieves images ordered by hash: a stable pseudo-random
// shuffle that stays deterministic for one library state.
func (r *LibraryRepository) ListRandom(ctx context.Context, limit int) ([]domain.Image, error) {
	return r.list(ctx,
		"select "+imageColumns+" from images order by sha256 limit ?",
		limitArg(limit))
}

// ListByYear retrieves images created in year, newest first.
func (r *LibraryRepository) ListByYear(ctx context.Context, year int) ([]domain.Image, error) {
	from, to := yearBounds(year)
	return r.list(ctx,
		"select "+imageColumns+" from images where created_at >= ? and created_at < ? order by created_at desc",
		from, to)
}

// ListByMonth retrieves images created in a month of a year, newest first.
func (r *LibraryRepository) ListByMonth(ctx context.Context, year, month int) ([]domain.Image, error) {
	from, to := monthBounds(year, month)
	return r.list(ctx,
		"select "+imageColumns+" from images where created_at >= ? and created_at < ? order by created_at desc",
		from, to)
}

// Years returns the distinct creation years present, newest first.
func (r *LibraryRepository) Years(ctx context.Context) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, `
select distinct cast(strftime('%Y', created_at, 'unixepoch') as integer) as year
from images order by year desc
	`)
	if err != nil {
		return nil, fmt.Errorf("while listing years: %w", err)
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, err
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

// Count returns the total number of images.
func (r *LibraryRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, "select count(*) from images").Scan(&n)
	return n, err
}

// Stats returns library-wide counters.
func (r *LibraryRepository) Stats(ctx context.Context) (*domain.LibraryStats, error) {
	stats := &domain.LibraryStats{
		CountsBySource: make(map[string]int64),
		CountsByYear:   make(map[int]int64),
	}

	var err error
	stats.TotalImages, err = r.Count(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, "select source, count(*) from images group by source")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var source string
		var n int64
		if err := rows.Scan(&source, &n); err != nil {
			return nil, err
		}
		stats.CountsBySource[source] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	yearRows, err := r.db.QueryContext(ctx, `
select cast(strftime('%Y', created_at, 'unixepoch') as integer) as year, count(*)
from images group by year
	`)
	if err != nil {
		return nil, err
	}
	defer yearRows.Close()
	for yearRows.Next() {
		var year int
		var n int64
		if err := yearRows.Scan(&year, &n); err != nil {
			return nil, err
		}
		stats.CountsByYear[year] = n
	}
	return stats, yearRows.Err()
}

// DeleteBySHA256 removes image records in one transaction and returns
// the number of rows removed.
func (r *LibraryRepository) DeleteBySHA256(ctx context.Context, hashes ...string) (int64, error) {
	if len(hashes) == 0 {
		return 0, nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("while starting deletion transaction: %w", err)
	}
	defer tx.Rollback()

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(hashes)), ",")
	args := make([]interface{}, len(hashes))
	for i, h := range hashes {
		args[i] = h
	}
	result, err := tx.ExecContext(ctx,
		"delete from images where sha256 in ("+placeholders+")", args...)
	if err != nil {
		return 0, fmt.Errorf("while deleting %d images: %w", len(hashes), err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return affected, tx.Commit()
}

func (r *LibraryRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.Image, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("while listing images: %w", err)
	}
	defer rows.Close()

	var images []domain.Image
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanImage converts one images row to a domain.Image.
func scanImage(row scanner) (domain.Image, error) {
	var img domain.Image
	var createdAt int64
	if err := row.Scan(&img.SHA256, &img.Filename, &img.Source, &createdAt); err != nil {
		return domain.Image{}, err
	}
	img.CreatedAt = time.Unix(createdAt, 0).UTC()
	return img, nil
}

// limitArg maps "no cap" to SQLite's unlimited LIMIT value.
func limitArg(limit int) int {
	if limit < 0 {
		return -1
	}
	return limit
}

func yearBounds(year int) (int64, int64) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return from.Unix(), from.AddDate(1, 0, 0).Unix()
}

func monthBounds(year, month int) (int64, int64) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from.Unix(), from.AddDate(0, 1, 0).Unix()
}

// Verify that LibraryRepository implements domain.LibraryRepository
var _ domain.LibraryRepository = (*LibraryRepository)(nil)
