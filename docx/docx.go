// Package docx writes DOCX (Office Open XML) documents composed of
// pictures and explicit page breaks.
//
// The writer produces the minimal package a word processor needs:
// content types, package relationships, the main document part, its
// relationships, and one media part per embedded picture. Pictures are
// emitted in the order they were added; the caller decides where page
// breaks go.
//
// Basic usage:
//
//	doc := docx.NewDocument()
//	if err := doc.AddPicture("page1.png", 6.0); err != nil {
//	    // handle error
//	}
//	doc.AddPageBreak()
//	if err := doc.AddPicture("page2.png", 6.0); err != nil {
//	    // handle error
//	}
//	err := doc.Save("out.docx")
package docx

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"os"
)

// XML namespaces used in DOCX files.
const (
	nsW   = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsWP  = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	nsA   = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsPic = "http://schemas.openxmlformats.org/drawingml/2006/picture"
	nsRel = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsCT  = "http://schemas.openxmlformats.org/package/2006/content-types"
)

// emuPerInch is the OOXML English Metric Unit scale: 914400 EMU per
// inch.
const emuPerInch = 914400

type blockKind int

const (
	pictureBlock blockKind = iota
	pageBreakBlock
)

// block is one body-level element, either a picture paragraph or a
// page-break paragraph.
type block struct {
	kind blockKind
	pic  int // index into pictures for pictureBlock
}

// picture holds an embedded image and its display extent in EMU.
type picture struct {
	name   string
	data   []byte
	cx, cy int64
}

// Document accumulates content and serializes it as a DOCX package.
// The zero value is not useful; use NewDocument.
type Document struct {
	blocks   []block
	pictures []picture
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{}
}

// AddPicture appends a PNG image as its own paragraph, scaled to the
// given physical width in inches with the aspect ratio preserved. The
// file is read immediately; an unreadable or non-PNG file is an error.
func (d *Document) AddPicture(path string, widthInches float64) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading picture: %w", err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decoding picture %s: %w", path, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("decoding picture %s: empty image", path)
	}

	cx := int64(widthInches*emuPerInch + 0.5)
	cy := int64(float64(cx)*float64(cfg.Height)/float64(cfg.Width) + 0.5)

	d.pictures = append(d.pictures, picture{
		name: fmt.Sprintf("image%d.png", len(d.pictures)+1),
		data: data,
		cx:   cx,
		cy:   cy,
	})
	d.blocks = append(d.blocks, block{kind: pictureBlock, pic: len(d.pictures) - 1})
	return nil
}

// AddPageBreak appends an explicit page break.
func (d *Document) AddPageBreak() {
	d.blocks = append(d.blocks, block{kind: pageBreakBlock})
}

// Save writes the document to a file.
func (d *Document) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := d.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Write serializes the document as a DOCX package.
func (d *Document) Write(w io.Writer) error {
	return writePackage(w, d)
}
