// Package render produces the printable artifacts: warning letters and member
// ID cards, both on the organization letterhead.
package render

import "bfcms/internal/warning"

const (
	marginLeft = 56.0
	bodyWidth  = 88
)

// Letterhead renders warning letters. It satisfies warning.LetterRenderer.
type Letterhead struct{}

func NewLetterhead() *Letterhead {
	return &Letterhead{}
}

func (l *Letterhead) RenderLetter(f warning.LetterFields) ([]byte, error) {
	page := &pdfPage{}

	y := pageHeight - 64
	page.addCentered(y, 18, fontBold, f.OrgName)
	y -= 18
	page.addCentered(y, 10, fontRegular, f.Tagline)
	y -= 14
	page.addCentered(y, 9, fontRegular, f.Contact)
	y -= 30

	page.addText(marginLeft, y, 10, fontRegular, "Ref: "+f.RefNumber)
	page.addText(pageWidth-marginLeft-150, y, 10, fontRegular, "Date: "+f.Date)
	y -= 24

	page.addText(marginLeft, y, 10, fontRegular, f.MemberName)
	y -= 13
	page.addText(marginLeft, y, 10, fontRegular, "Membership No: "+f.MembershipNumber)
	y -= 26

	page.addText(marginLeft, y, 11, fontBold, f.Subject)
	y -= 20

	for _, paragraph := range f.Body {
		for _, line := range wrap(paragraph, bodyWidth) {
			page.addText(marginLeft, y, 10, fontRegular, line)
			y -= 13
		}
		y -= 6
	}

	y -= 14
	page.addText(marginLeft, y, 10, fontBold, f.Signatory)
	y -= 13
	page.addText(marginLeft, y, 10, fontRegular, f.OrgName)

	page.addCentered(48, 9, fontRegular, f.Footer)
	return page.render(), nil
}
