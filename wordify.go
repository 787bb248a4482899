// Package wordify converts PDF files to Word documents by rasterizing
// each page, optionally erasing large dark rectangular overlays that
// obscure underlying content, and embedding the page images into a
// paginated DOCX, one image per page.
//
// Basic usage:
//
//	err := wordify.Open("scan.pdf").WriteFile("scan.docx")
//	if err != nil {
//	    // handle error
//	}
//
// With options:
//
//	err := wordify.Open("scan.pdf").
//	    DPI(150).
//	    FixOverlay(false).
//	    WriteFile("scan.docx")
//
// For server use, the lower-level raster, overlay, and docx packages
// are also available.
package wordify

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/012arish/Wordify/contrast"
	"github.com/012arish/Wordify/docx"
	"github.com/012arish/Wordify/overlay"
	"github.com/012arish/Wordify/raster"
)

// Converter performs a single PDF-to-DOCX conversion. Build one with
// Open, FromBytes, or FromDocument, configure it with the chainable
// methods, and finish with Write or WriteFile. A Converter is not safe
// for concurrent use; each request gets its own.
type Converter struct {
	filename string
	data     []byte
	doc      *raster.Document
	ownsDoc  bool
	opts     convertOptions
	log      logrus.FieldLogger
}

// Open prepares a conversion of a PDF file.
func Open(filename string) *Converter {
	return &Converter{filename: filename, ownsDoc: true, opts: defaultOptions()}
}

// FromBytes prepares a conversion of a PDF held in memory.
func FromBytes(data []byte) *Converter {
	return &Converter{data: data, ownsDoc: true, opts: defaultOptions()}
}

// FromDocument prepares a conversion of an already-opened document.
// The caller keeps ownership and is responsible for closing it.
func FromDocument(doc *raster.Document) *Converter {
	return &Converter{doc: doc, opts: defaultOptions()}
}

// DPI sets the rasterization resolution. Values above MaxDPI are
// silently capped; non-positive values leave the default in place.
func (c *Converter) DPI(dpi int) *Converter {
	if dpi > 0 {
		if dpi > MaxDPI {
			dpi = MaxDPI
		}
		c.opts.dpi = dpi
	}
	return c
}

// FixOverlay enables or disables dark-overlay removal. Enabled by
// default.
func (c *Converter) FixOverlay(enabled bool) *Converter {
	c.opts.fixOverlay = enabled
	return c
}

// PageWidth sets the physical width, in inches, each page image is
// scaled to in the output document.
func (c *Converter) PageWidth(inches float64) *Converter {
	if inches > 0 {
		c.opts.pageWidth = inches
	}
	return c
}

// WorkDir sets the staging directory for intermediate page images. The
// directory must exist; the caller owns its lifecycle. When unset, the
// Converter stages pages in a private temporary directory removed when
// the conversion finishes.
func (c *Converter) WorkDir(dir string) *Converter {
	c.opts.workDir = dir
	return c
}

// Logger sets the logger used for per-page progress. Conversions are
// silent without one.
func (c *Converter) Logger(log logrus.FieldLogger) *Converter {
	c.log = log
	return c
}

// PageCount opens the source and returns its page count.
func (c *Converter) PageCount() (int, error) {
	doc, release, err := c.open()
	if err != nil {
		return 0, err
	}
	defer release()
	return doc.PageCount(), nil
}

// WriteFile converts the source and writes the DOCX to path.
func (c *Converter) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := c.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Write converts the source and writes the DOCX to w. Pages are
// processed strictly in order: rasterize, remove overlays if enabled,
// boost contrast when something was removed, stage as PNG, then
// assemble the document with a page break between consecutive pages.
func (c *Converter) Write(w io.Writer) error {
	doc, release, err := c.open()
	if err != nil {
		return err
	}
	defer release()

	workDir := c.opts.workDir
	if workDir == "" {
		workDir, err = os.MkdirTemp("", "wordify-")
		if err != nil {
			return fmt.Errorf("creating staging directory: %w", err)
		}
		defer os.RemoveAll(workDir)
	}

	count := doc.PageCount()
	paths := make([]string, 0, count)
	for i := 0; i < count; i++ {
		img, err := doc.RenderPage(i, c.opts.dpi)
		if err != nil {
			return err
		}

		if c.opts.fixOverlay && overlay.Remove(img, c.opts.overlay) {
			contrast.Enhance(img, c.opts.contrastFactor)
			if c.log != nil {
				c.log.WithField("page", i+1).Debug("removed dark overlay")
			}
		}

		path := filepath.Join(workDir, fmt.Sprintf("p%d.png", i+1))
		if err := writePNG(path, img); err != nil {
			return err
		}
		paths = append(paths, path)
	}

	out := docx.NewDocument()
	for i, path := range paths {
		if err := out.AddPicture(path, c.opts.pageWidth); err != nil {
			return fmt.Errorf("assembling document: %w", err)
		}
		if i < len(paths)-1 {
			out.AddPageBreak()
		}
	}
	if err := out.Write(w); err != nil {
		return fmt.Errorf("assembling document: %w", err)
	}
	return nil
}

// open resolves the source into a raster.Document and returns a release
// function. Documents passed in via FromDocument are not closed here.
func (c *Converter) open() (*raster.Document, func(), error) {
	if c.doc != nil && !c.ownsDoc {
		return c.doc, func() {}, nil
	}
	var (
		doc *raster.Document
		err error
	)
	if c.filename != "" {
		doc, err = raster.OpenDocument(c.filename)
	} else {
		doc, err = raster.NewDocument(c.data)
	}
	if err != nil {
		return nil, nil, err
	}
	return doc, func() { doc.Close() }, nil
}

// writePNG stages a page raster as a losslessly compressed PNG.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("staging page image: %w", err)
	}
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding page image: %w", err)
	}
	return f.Close()
}
