// Package pdftest builds small, well-formed PDF files for tests.
//
// The generated documents carry US Letter pages (612x792 points) with
// caller-supplied content streams, a complete cross-reference table,
// and correct byte offsets, so strict parsers accept them without
// repair.
package pdftest

import (
	"bytes"
	"fmt"
	"strings"
)

// Build returns a PDF with one page per content stream. An empty
// string produces a blank page.
func Build(pageContents ...string) []byte {
	var buf bytes.Buffer
	var offsets []int
	add := func(body string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(body)
	}

	buf.WriteString("%PDF-1.4\n")

	kids := make([]string, len(pageContents))
	for i := range pageContents {
		kids[i] = fmt.Sprintf("%d 0 R", 3+2*i)
	}
	add("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	add(fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n",
		strings.Join(kids, " "), len(pageContents)))

	for i, content := range pageContents {
		add(fmt.Sprintf("%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents %d 0 R >>\nendobj\n",
			3+2*i, 4+2*i))
		add(fmt.Sprintf("%d 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n",
			4+2*i, len(content), content))
	}

	xrefPos := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(offsets)+1, xrefPos)
	return buf.Bytes()
}

// DarkBar returns a content stream drawing a solid black rectangle in
// PDF user space (origin bottom-left, units in points).
func DarkBar(x, y, w, h float64) string {
	return fmt.Sprintf("0 0 0 rg %g %g %g %g re f", x, y, w, h)
}
