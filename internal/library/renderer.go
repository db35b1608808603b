package library

import (
	"context"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"

	"github.com/go-git/go-billy/v6"

	"github.com/lewtec/triagem/internal/domain"
)

// Renderer implements domain.Renderer: it decodes the image file from
// the library filesystem. Any failure yields a placeholder instead of
// an error, so a broken file never takes the triage flow down.
type Renderer struct {
	fs billy.Filesystem
}

// NewRenderer creates a Renderer over the library filesystem.
func NewRenderer(fs billy.Filesystem) *Renderer {
	return &Renderer{fs: fs}
}

// Render decodes img's file, or returns the placeholder.
func (r *Renderer) Render(_ context.Context, img domain.Image) image.Image {
	f, err := r.fs.Open(img.Filename)
	if err != nil {
		log.Printf("render: opening '%s': %s", img.Filename, err)
		return Placeholder()
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		log.Printf("render: decoding '%s': %s", img.Filename, err)
		return Placeholder()
	}
	return m
}

// PlaceholderSize is the edge length of the fallback image.
const PlaceholderSize = 64

// Placeholder returns the uniform gray image served when a file cannot
// be rendered.
func Placeholder() image.Image {
	m := image.NewRGBA(image.Rect(0, 0, PlaceholderSize, PlaceholderSize))
	gray := color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}
	for y := 0; y < PlaceholderSize; y++ {
		for x := 0; x < PlaceholderSize; x++ {
			m.Set(x, y, gray)
		}
	}
	return m
}

// Verify that Renderer implements domain.Renderer
var _ domain.Renderer = (*Renderer)(nil)
