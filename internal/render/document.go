// Package render wraps the external page renderer and owns the live render
// loop for the annotation view. Page rasters come from go-fitz; document-space
// page sizes come from pdfcpu so export geometry never depends on raster
// rounding.
package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/kpauljoseph/pdfmarkup/pkg/models"
)

var (
	// ErrInvalidInput means the path was rejected before any load attempt.
	ErrInvalidInput = errors.New("input is not a PDF file")
	// ErrUnreadable means the file itself could not be read.
	ErrUnreadable = errors.New("input file could not be read")
	// ErrLoad means the renderer could not parse the document bytes.
	ErrLoad = errors.New("document could not be parsed")
)

const renderBaseDPI = 72.0

// Renderer is the contract the view loop needs from a loaded document.
type Renderer interface {
	PageCount() int
	// PageSize returns the document-space size of a 1-based page.
	PageSize(page int) (models.PageDimensions, error)
	// RenderPage rasterizes a 1-based page at the given scale.
	RenderPage(ctx context.Context, page int, scale float64) (*image.RGBA, error)
	Close() error
}

// Document is a loaded PDF backed by go-fitz.
type Document struct {
	doc  *fitz.Document
	dims []models.PageDimensions
	path string
}

var _ Renderer = (*Document)(nil)

// Open loads a PDF for rendering. The extension is checked before anything
// is read so that non-PDF input never reaches the renderer.
func Open(path string) (*Document, error) {
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoad, path, err)
	}

	dims, err := api.PageDimsFile(path)
	if err != nil {
		doc.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrLoad, path, err)
	}
	if len(dims) != doc.NumPage() {
		doc.Close()
		return nil, fmt.Errorf("%w: %s: page count mismatch (%d vs %d)",
			ErrLoad, path, len(dims), doc.NumPage())
	}

	pageDims := make([]models.PageDimensions, len(dims))
	for i, d := range dims {
		pageDims[i] = models.PageDimensions{Width: d.Width, Height: d.Height}
	}

	return &Document{doc: doc, dims: pageDims, path: path}, nil
}

func (d *Document) PageCount() int {
	return d.doc.NumPage()
}

func (d *Document) Path() string {
	return d.path
}

// PageSizes returns the document-space dimensions of every page, in order.
func (d *Document) PageSizes() []models.PageDimensions {
	out := make([]models.PageDimensions, len(d.dims))
	copy(out, d.dims)
	return out
}

func (d *Document) PageSize(page int) (models.PageDimensions, error) {
	if page < 1 || page > len(d.dims) {
		return models.PageDimensions{}, fmt.Errorf("page %d out of range [1,%d]", page, len(d.dims))
	}
	return d.dims[page-1], nil
}

func (d *Document) RenderPage(ctx context.Context, page int, scale float64) (*image.RGBA, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if page < 1 || page > d.doc.NumPage() {
		return nil, fmt.Errorf("page %d out of range [1,%d]", page, d.doc.NumPage())
	}

	// Page numbers are zero indexed in the fitz package.
	img, err := d.doc.ImageDPI(page-1, renderBaseDPI*scale)
	if err != nil {
		return nil, fmt.Errorf("failed to render page %d: %w", page, err)
	}

	// The raster itself is not interruptible, so a cancelled request is
	// only detected once it completes.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return img, nil
}

func (d *Document) Close() error {
	return d.doc.Close()
}
