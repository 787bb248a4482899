package wordify

import (
	"archive/zip"
	"bytes"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/012arish/Wordify/internal/pdftest"
)

// convert runs the pipeline on the given PDF bytes and returns the
// output package.
func convert(t *testing.T, pdf []byte, configure func(*Converter) *Converter) *zip.Reader {
	t.Helper()

	c := FromBytes(pdf)
	if configure != nil {
		c = configure(c)
	}
	var buf bytes.Buffer
	if err := c.Write(&buf); err != nil {
		t.Fatalf("conversion failed: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("output is not a valid DOCX package: %v", err)
	}
	return zr
}

// decodeMedia decodes an embedded page image from the package.
func decodeMedia(t *testing.T, zr *zip.Reader, name string) image.Image {
	t.Helper()

	for _, f := range zr.File {
		if f.Name != "word/media/"+name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open %s: %v", name, err)
		}
		defer rc.Close()
		img, err := png.Decode(rc)
		if err != nil {
			t.Fatalf("failed to decode %s: %v", name, err)
		}
		return img
	}
	t.Fatalf("media part %s not found", name)
	return nil
}

func readPart(t *testing.T, zr *zip.Reader, name string) string {
	t.Helper()

	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open part %s: %v", name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("failed to read part %s: %v", name, err)
		}
		return string(data)
	}
	t.Fatalf("part %s not found", name)
	return ""
}

func countMedia(zr *zip.Reader) int {
	n := 0
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "word/media/") {
			n++
		}
	}
	return n
}

func TestPageOrderPreserved(t *testing.T) {
	zr := convert(t, pdftest.Build("", "", ""), func(c *Converter) *Converter {
		return c.DPI(72)
	})

	if got := countMedia(zr); got != 3 {
		t.Errorf("embedded %d page images, want 3", got)
	}
	document := readPart(t, zr, "word/document.xml")
	if got := strings.Count(document, `<w:br w:type="page"/>`); got != 2 {
		t.Errorf("found %d page breaks, want 2", got)
	}
	if strings.LastIndex(document, `<w:br`) > strings.LastIndex(document, `<a:blip`) {
		t.Error("page break after the final page")
	}
}

func TestOverlayRemovedEndToEnd(t *testing.T) {
	// Page 1 carries a full-width dark bar over its top half; page 2 is
	// clean. After conversion the bar region must be white and page 2
	// untouched.
	pdf := pdftest.Build(pdftest.DarkBar(0, 396, 612, 396), "")
	zr := convert(t, pdf, func(c *Converter) *Converter {
		return c.DPI(150)
	})

	if got := countMedia(zr); got != 2 {
		t.Fatalf("embedded %d page images, want 2", got)
	}

	page1 := decodeMedia(t, zr, "image1.png")
	b := page1.Bounds()
	r, g, bl, _ := page1.At(b.Dx()/2, b.Dy()/4).RGBA()
	if r>>8 < 245 || g>>8 < 245 || bl>>8 < 245 {
		t.Errorf("bar region not cleared, got (%d,%d,%d)", r>>8, g>>8, bl>>8)
	}

	page2 := decodeMedia(t, zr, "image2.png")
	b = page2.Bounds()
	r, g, bl, _ = page2.At(b.Dx()/2, b.Dy()/2).RGBA()
	if r>>8 < 245 || g>>8 < 245 || bl>>8 < 245 {
		t.Errorf("clean page altered, got (%d,%d,%d)", r>>8, g>>8, bl>>8)
	}
}

func TestFixOverlayDisabled(t *testing.T) {
	pdf := pdftest.Build(pdftest.DarkBar(0, 396, 612, 396))
	zr := convert(t, pdf, func(c *Converter) *Converter {
		return c.DPI(96).FixOverlay(false)
	})

	page1 := decodeMedia(t, zr, "image1.png")
	b := page1.Bounds()
	r, g, bl, _ := page1.At(b.Dx()/2, b.Dy()/4).RGBA()
	if r>>8 > 10 || g>>8 > 10 || bl>>8 > 10 {
		t.Errorf("bar should survive with fix_overlay off, got (%d,%d,%d)", r>>8, g>>8, bl>>8)
	}
}

func TestPageCountFromBytes(t *testing.T) {
	n, err := FromBytes(pdftest.Build("", "")).PageCount()
	if err != nil {
		t.Fatalf("PageCount failed: %v", err)
	}
	if n != 2 {
		t.Errorf("PageCount() = %d, want 2", n)
	}
}

func TestWorkDirStagingKept(t *testing.T) {
	dir := t.TempDir()
	convert(t, pdftest.Build("", ""), func(c *Converter) *Converter {
		return c.DPI(72).WorkDir(dir)
	})

	// Caller-owned staging survives the conversion.
	for _, name := range []string{"p1.png", "p2.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("staged page %s missing: %v", name, err)
		}
	}
}

func TestDPICapped(t *testing.T) {
	c := Open("whatever.pdf").DPI(1000)
	if c.opts.dpi != MaxDPI {
		t.Errorf("dpi = %d, want capped at %d", c.opts.dpi, MaxDPI)
	}
	c = Open("whatever.pdf").DPI(-5)
	if c.opts.dpi != DefaultDPI {
		t.Errorf("dpi = %d, want default %d", c.opts.dpi, DefaultDPI)
	}
}

func TestOpenMissingFile(t *testing.T) {
	if err := Open("nonexistent.pdf").WriteFile(filepath.Join(t.TempDir(), "out.docx")); err == nil {
		t.Error("expected error for missing input file")
	}
}
