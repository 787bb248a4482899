// Package raster renders PDF pages to in-memory RGB rasters.
//
// Rendering is delegated to MuPDF via go-fitz. Pages render at a
// caller-specified resolution: the raster scales by dpi/72 relative to
// the page's native 72-dpi coordinate space. Any alpha channel is
// composited over opaque white, so transparent regions come out as
// background rather than black.
package raster

import (
	"fmt"
	"image"
	"image/color"

	fitz "github.com/gen2brain/go-fitz"
	"golang.org/x/image/draw"
)

// Document is an open PDF ready for page rendering. It must be closed
// when no longer needed. A Document holds no mutable state between
// renders, but go-fitz handles are not safe for concurrent use; callers
// that render from multiple goroutines need one Document each.
type Document struct {
	doc *fitz.Document
}

// OpenDocument opens a PDF file for rendering.
func OpenDocument(filename string) (*Document, error) {
	doc, err := fitz.New(filename)
	if err != nil {
		return nil, fmt.Errorf("opening pdf: %w", err)
	}
	return &Document{doc: doc}, nil
}

// NewDocument opens a PDF held in memory for rendering.
func NewDocument(data []byte) (*Document, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("opening pdf: %w", err)
	}
	return &Document{doc: doc}, nil
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	return d.doc.NumPage()
}

// RenderPage rasterizes the page at index (0-based) at the given
// resolution. dpi must be positive; callers are expected to cap it to
// bound memory, since raster size grows quadratically with resolution.
func (d *Document) RenderPage(index, dpi int) (*image.RGBA, error) {
	if dpi <= 0 {
		return nil, fmt.Errorf("rendering page %d: dpi must be positive, got %d", index+1, dpi)
	}
	img, err := d.doc.ImageDPI(index, float64(dpi))
	if err != nil {
		return nil, fmt.Errorf("rendering page %d: %w", index+1, err)
	}
	return flatten(img), nil
}

// Close releases the underlying MuPDF resources.
func (d *Document) Close() error {
	return d.doc.Close()
}

// flatten composites the rendered page over opaque white, discarding
// alpha and normalizing the raster to a zero origin.
func flatten(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Copy(dst, image.Point{}, image.NewUniform(color.White), dst.Bounds(), draw.Src, nil)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}
