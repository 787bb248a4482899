package raster

import (
	"testing"

	"github.com/012arish/Wordify/internal/pdftest"
)

func TestNewDocumentInvalid(t *testing.T) {
	if _, err := NewDocument([]byte("this is not a pdf")); err == nil {
		t.Error("expected error for non-PDF data")
	}
}

func TestPageCount(t *testing.T) {
	doc, err := NewDocument(pdftest.Build("", "", ""))
	if err != nil {
		t.Fatalf("failed to open fixture: %v", err)
	}
	defer doc.Close()

	if got := doc.PageCount(); got != 3 {
		t.Errorf("PageCount() = %d, want 3", got)
	}
}

func TestRenderPageDimensions(t *testing.T) {
	doc, err := NewDocument(pdftest.Build(""))
	if err != nil {
		t.Fatalf("failed to open fixture: %v", err)
	}
	defer doc.Close()

	tests := []struct {
		dpi  int
		w, h int
	}{
		{72, 612, 792},
		{144, 1224, 1584},
	}
	for _, tt := range tests {
		img, err := doc.RenderPage(0, tt.dpi)
		if err != nil {
			t.Fatalf("failed to render at %d dpi: %v", tt.dpi, err)
		}
		// Allow a pixel of rounding in the renderer.
		if dx := img.Bounds().Dx(); dx < tt.w-1 || dx > tt.w+1 {
			t.Errorf("width at %d dpi = %d, want ~%d", tt.dpi, dx, tt.w)
		}
		if dy := img.Bounds().Dy(); dy < tt.h-1 || dy > tt.h+1 {
			t.Errorf("height at %d dpi = %d, want ~%d", tt.dpi, dy, tt.h)
		}
	}
}

func TestRenderPageContent(t *testing.T) {
	// Black bar over the top half of the page (PDF origin is bottom
	// left, raster origin top left).
	doc, err := NewDocument(pdftest.Build(pdftest.DarkBar(0, 396, 612, 396)))
	if err != nil {
		t.Fatalf("failed to open fixture: %v", err)
	}
	defer doc.Close()

	img, err := doc.RenderPage(0, 72)
	if err != nil {
		t.Fatalf("failed to render: %v", err)
	}
	b := img.Bounds()

	r, g, bl, _ := img.At(b.Dx()/2, b.Dy()/4).RGBA()
	if r>>8 > 10 || g>>8 > 10 || bl>>8 > 10 {
		t.Errorf("expected dark pixel in bar, got (%d,%d,%d)", r>>8, g>>8, bl>>8)
	}
	r, g, bl, _ = img.At(b.Dx()/2, b.Dy()*3/4).RGBA()
	if r>>8 < 245 || g>>8 < 245 || bl>>8 < 245 {
		t.Errorf("expected white pixel below bar, got (%d,%d,%d)", r>>8, g>>8, bl>>8)
	}
}

func TestRenderPageBadDPI(t *testing.T) {
	doc, err := NewDocument(pdftest.Build(""))
	if err != nil {
		t.Fatalf("failed to open fixture: %v", err)
	}
	defer doc.Close()

	if _, err := doc.RenderPage(0, 0); err == nil {
		t.Error("expected error for zero dpi")
	}
	if _, err := doc.RenderPage(0, -100); err == nil {
		t.Error("expected error for negative dpi")
	}
}
