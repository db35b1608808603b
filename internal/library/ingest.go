package library

import (
	"context"
	"crypto/sha256"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"time"

	"github.com/go-git/go-billy/v6"
	"github.com/google/uuid"

	"github.com/lewtec/triagem/internal/domain"
)

// Ingestor normalizes decoded images into the library: each image is
// re-encoded to PNG, named by its content hash, and indexed. Writing
// goes through a uuid-named temp file and an atomic rename, so a
// crashed ingest never leaves a half-written image under its final
// name.
type Ingestor struct {
	repo domain.LibraryRepository
	fs   billy.Filesystem
}

// NewIngestor creates an Ingestor over the library index and filesystem.
func NewIngestor(repo domain.LibraryRepository, fs billy.Filesystem) *Ingestor {
	return &Ingestor{repo: repo, fs: fs}
}

// Ingest writes img into the library and indexes it with the given
// source label and creation time. Re-ingesting identical content is an
// upsert: the index row is refreshed and the file overwritten in place.
func (in *Ingestor) Ingest(ctx context.Context, img image.Image, source string, createdAt time.Time) (domain.Image, error) {
	tempFile := fmt.Sprintf("%s.png", uuid.New())
	f, err := in.fs.Create(tempFile)
	if err != nil {
		return domain.Image{}, fmt.Errorf("while creating temp file: %w", err)
	}
	hasher := sha256.New()
	w := io.MultiWriter(f, hasher)
	if err := png.Encode(w, img); err != nil {
		f.Close()
		in.fs.Remove(tempFile)
		return domain.Image{}, fmt.Errorf("while encoding image: %w", err)
	}
	if err := f.Close(); err != nil {
		in.fs.Remove(tempFile)
		return domain.Image{}, fmt.Errorf("while closing temp file: %w", err)
	}

	hash := fmt.Sprintf("%x", hasher.Sum(nil))
	filename := hash + ".png"
	if err := in.fs.Rename(tempFile, filename); err != nil {
		in.fs.Remove(tempFile)
		return domain.Image{}, fmt.Errorf("while renaming temp file to '%s': %w", filename, err)
	}

	ret := domain.Image{
		SHA256:    hash,
		Filename:  filename,
		Source:    source,
		CreatedAt: createdAt,
	}
	if err := in.repo.Insert(ctx, ret); err != nil {
		return domain.Image{}, fmt.Errorf("while indexing image '%s': %w", filename, err)
	}
	log.Printf("ingest: stored %s (source %s)", filename, source)
	return ret, nil
}
