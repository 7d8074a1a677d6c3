package render

import (
	"bytes"
	"fmt"
	"strings"
)

// A4 in points.
const (
	pageWidth  = 595.0
	pageHeight = 842.0
)

type fontRef int

const (
	fontRegular fontRef = iota
	fontBold
)

type textLine struct {
	x, y float64
	size float64
	font fontRef
	text string
}

// pdfPage accumulates positioned text lines and serializes them as a
// single-page PDF 1.4 document with the two built-in Helvetica fonts. Keeping
// the writer this small avoids pulling a rendering engine into the build for
// what is one page of text.
type pdfPage struct {
	lines []textLine
}

func (p *pdfPage) addText(x, y, size float64, font fontRef, text string) {
	p.lines = append(p.lines, textLine{x: x, y: y, size: size, font: font, text: text})
}

// addCentered places text centered horizontally using the Helvetica average
// glyph width. Good enough for headings; body text is left-aligned.
func (p *pdfPage) addCentered(y, size float64, font fontRef, text string) {
	width := float64(len(text)) * size * 0.5
	p.addText((pageWidth-width)/2, y, size, font, text)
}

func escapeText(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}

func (p *pdfPage) contentStream() []byte {
	var b bytes.Buffer
	b.WriteString("BT\n")
	for _, l := range p.lines {
		name := "/F1"
		if l.font == fontBold {
			name = "/F2"
		}
		fmt.Fprintf(&b, "%s %.1f Tf\n", name, l.size)
		fmt.Fprintf(&b, "1 0 0 1 %.1f %.1f Tm\n", l.x, l.y)
		fmt.Fprintf(&b, "(%s) Tj\n", escapeText(l.text))
	}
	b.WriteString("ET\n")
	return b.Bytes()
}

func (p *pdfPage) render() []byte {
	content := p.contentStream()

	var b bytes.Buffer
	offsets := make([]int, 0, 7)
	writeObj := func(body string) {
		offsets = append(offsets, b.Len())
		b.WriteString(body)
	}

	b.WriteString("%PDF-1.4\n")
	writeObj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	writeObj("2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n")
	writeObj(fmt.Sprintf("3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %.0f %.0f] /Resources << /Font << /F1 4 0 R /F2 5 0 R >> >> /Contents 6 0 R >>\nendobj\n", pageWidth, pageHeight))
	writeObj("4 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n")
	writeObj("5 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica-Bold >>\nendobj\n")
	writeObj(fmt.Sprintf("6 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(content), content))

	xrefStart := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n", len(offsets)+1)
	b.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xrefStart)
	return b.Bytes()
}

// wrap splits text into lines of at most width characters, breaking on spaces.
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	current := words[0]
	for _, w := range words[1:] {
		if len(current)+1+len(w) > width {
			lines = append(lines, current)
			current = w
			continue
		}
		current += " " + w
	}
	return append(lines, current)
}
