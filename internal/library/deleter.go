package library

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/go-git/go-billy/v6"
	"github.com/hashicorp/go-multierror"

	"github.com/lewtec/triagem/internal/domain"
)

// Deleter implements domain.DeletionBackend: it removes the image files
// from the library filesystem and drops their index rows in one
// transaction. Any failure surfaces as a single DeletionError and the
// call can simply be repeated; files already gone are tolerated, so a
// retry converges.
type Deleter struct {
	repo domain.LibraryRepository
	fs   billy.Filesystem
}

// NewDeleter creates a Deleter over the library index and the
// filesystem rooted at the library directory.
func NewDeleter(repo domain.LibraryRepository, fs billy.Filesystem) *Deleter {
	return &Deleter{repo: repo, fs: fs}
}

// DeletePermanently removes the batch. Files first (a half-deleted file
// set is recoverable by retrying; index rows without files are not),
// then the index rows in one transaction.
func (d *Deleter) DeletePermanently(ctx context.Context, images []domain.Image) error {
	if len(images) == 0 {
		return nil
	}

	var removal *multierror.Error
	for _, img := range images {
		err := d.fs.Remove(img.Filename)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			removal = multierror.Append(removal, fmt.Errorf("removing '%s': %w", img.Filename, err))
		}
	}
	if err := removal.ErrorOrNil(); err != nil {
		return &domain.DeletionError{Detail: "while removing image files", Err: err}
	}

	hashes := make([]string, len(images))
	for i, img := range images {
		hashes[i] = img.SHA256
	}
	n, err := d.repo.DeleteBySHA256(ctx, hashes...)
	if err != nil {
		return &domain.DeletionError{Detail: "while removing index rows", Err: err}
	}
	log.Printf("library: permanently deleted %d images (%d index rows)", len(images), n)
	return nil
}

// Verify that Deleter implements domain.DeletionBackend
var _ domain.DeletionBackend = (*Deleter)(nil)
