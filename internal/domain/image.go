package domain

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"
)

// Image is the opaque handle the triage core works with. SHA256
// identifies the image in the library; CreatedAt drives the year/month
// categories; Source is the classification label recorded at ingest.
type Image struct {
	SHA256    string
	Filename  string
	CreatedAt time.Time
	Source    string
}

// Well-known source labels. Any string is a valid source; these are the
// ones the ingest pipeline writes by default.
const (
	SourceLibrary    = "library"
	SourceScreenshot = "screenshot"
)

// Decision is the binary triage outcome for one image.
type Decision int

const (
	DecisionKeep Decision = iota + 1
	DecisionDelete
)

func (d Decision) String() string {
	switch d {
	case DecisionKeep:
		return "keep"
	case DecisionDelete:
		return "delete"
	}
	return "unknown"
}

// Source supplies the ordered image list for a category, newest first,
// capped at an implementation-chosen limit for the non-parameterized
// categories. A call observes one consistent library state.
type Source interface {
	Fetch(ctx context.Context, category Category) ([]Image, error)
}

// Renderer resolves an image handle to pixels. Failures yield a
// placeholder image, never an error the caller must branch on.
type Renderer interface {
	Render(ctx context.Context, img Image) image.Image
}

// DeletionBackend permanently removes a batch of images. The batch
// either fully succeeds or fails as one DeletionError; callers keep
// their staged state on failure and may retry.
type DeletionBackend interface {
	DeletePermanently(ctx context.Context, images []Image) error
}

// Feedback receives fire-and-forget cues on committed and reverted
// decisions. Implementations must not block.
type Feedback interface {
	DecisionCommitted(img Image, decision Decision)
	DecisionReverted(img Image, decision Decision)
}

// Error kinds surfaced by the triage core. All are recoverable.
var (
	ErrInvalidCategory = errors.New("invalid category")
	ErrNoSession       = errors.New("no session for category")
	ErrExhausted       = errors.New("category exhausted")
	ErrFlushPending    = errors.New("permanent deletion in flight")
)

// DeletionError wraps a DeletionBackend failure with its detail.
type DeletionError struct {
	Detail string
	Err    error
}

func (e *DeletionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("permanent deletion failed: %s: %v", e.Detail, e.Err)
	}
	return fmt.Sprintf("permanent deletion failed: %s", e.Detail)
}

func (e *DeletionError) Unwrap() error { return e.Err }
