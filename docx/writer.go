package docx

import (
	"archive/zip"
	"fmt"
	"io"
	"strings"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// writePackage emits the full DOCX zip: content types, package rels,
// document part, document rels, and the media parts.
func writePackage(w io.Writer, d *Document) error {
	zw := zip.NewWriter(w)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML()},
		{"_rels/.rels", packageRelsXML()},
		{"word/document.xml", documentXML(d)},
		{"word/_rels/document.xml.rels", documentRelsXML(d)},
	}
	for _, p := range parts {
		f, err := zw.Create(p.name)
		if err != nil {
			return fmt.Errorf("creating %s: %w", p.name, err)
		}
		if _, err := f.Write([]byte(p.content)); err != nil {
			return fmt.Errorf("writing %s: %w", p.name, err)
		}
	}

	for _, pic := range d.pictures {
		f, err := zw.Create("word/media/" + pic.name)
		if err != nil {
			return fmt.Errorf("creating media part %s: %w", pic.name, err)
		}
		if _, err := f.Write(pic.data); err != nil {
			return fmt.Errorf("writing media part %s: %w", pic.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing package: %w", err)
	}
	return nil
}

func contentTypesXML() string {
	return xmlHeader +
		`<Types xmlns="` + nsCT + `">` +
		`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
		`<Default Extension="xml" ContentType="application/xml"/>` +
		`<Default Extension="png" ContentType="image/png"/>` +
		`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
		`</Types>`
}

func packageRelsXML() string {
	return xmlHeader +
		`<Relationships xmlns="` + nsRel + `">` +
		`<Relationship Id="rId1" Type="` + nsR + `/officeDocument" Target="word/document.xml"/>` +
		`</Relationships>`
}

// documentRelsXML maps each embedded picture to its media part. Picture
// n is always rId(n), matching the r:embed references in the document
// part.
func documentRelsXML(d *Document) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Relationships xmlns="` + nsRel + `">`)
	for i, pic := range d.pictures {
		fmt.Fprintf(&b, `<Relationship Id="rId%d" Type="%s/image" Target="media/%s"/>`, i+1, nsR, pic.name)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

func documentXML(d *Document) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<w:document xmlns:w="%s" xmlns:r="%s" xmlns:wp="%s" xmlns:a="%s" xmlns:pic="%s">`, nsW, nsR, nsWP, nsA, nsPic)
	b.WriteString(`<w:body>`)
	for _, blk := range d.blocks {
		switch blk.kind {
		case pictureBlock:
			writePictureParagraph(&b, blk.pic+1, d.pictures[blk.pic])
		case pageBreakBlock:
			b.WriteString(`<w:p><w:r><w:br w:type="page"/></w:r></w:p>`)
		}
	}
	// Letter page, one-inch margins (sizes in twips).
	b.WriteString(`<w:sectPr><w:pgSz w:w="12240" w:h="15840"/>` +
		`<w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440" w:header="720" w:footer="720" w:gutter="0"/>` +
		`</w:sectPr>`)
	b.WriteString(`</w:body></w:document>`)
	return b.String()
}

// writePictureParagraph emits one paragraph holding an inline drawing.
// n is the 1-based picture number, used for the relationship id and the
// drawing object ids.
func writePictureParagraph(b *strings.Builder, n int, pic picture) {
	fmt.Fprintf(b, `<w:p><w:r><w:drawing>`+
		`<wp:inline distT="0" distB="0" distL="0" distR="0">`+
		`<wp:extent cx="%d" cy="%d"/>`+
		`<wp:docPr id="%d" name="%s"/>`+
		`<a:graphic><a:graphicData uri="%s">`+
		`<pic:pic>`+
		`<pic:nvPicPr><pic:cNvPr id="%d" name="%s"/><pic:cNvPicPr/></pic:nvPicPr>`+
		`<pic:blipFill><a:blip r:embed="rId%d"/><a:stretch><a:fillRect/></a:stretch></pic:blipFill>`+
		`<pic:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
		`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr>`+
		`</pic:pic>`+
		`</a:graphicData></a:graphic>`+
		`</wp:inline>`+
		`</w:drawing></w:r></w:p>`,
		pic.cx, pic.cy, n, pic.name, nsPic, n, pic.name, n, pic.cx, pic.cy)
}
