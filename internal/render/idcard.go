package render

import "bfcms/internal/member"

// CardRenderer renders member ID cards. It satisfies member.CardRenderer.
// The QR payload is printed as text; scanning apps read the same
// pipe-delimited value the /qr endpoint returns.
type CardRenderer struct{}

func NewCardRenderer() *CardRenderer {
	return &CardRenderer{}
}

func (c *CardRenderer) RenderCard(f member.CardFields) ([]byte, string, error) {
	page := &pdfPage{}

	y := pageHeight - 80
	page.addCentered(y, 16, fontBold, f.OrgName)
	y -= 16
	page.addCentered(y, 10, fontRegular, "MEMBER IDENTIFICATION CARD")
	y -= 36

	rows := []struct{ label, value string }{
		{"Name", f.FullName},
		{"Membership No", f.MembershipNumber},
		{"Department", f.Department},
		{"Date Joined", f.DateJoined},
		{"Status", f.Status},
	}
	for _, row := range rows {
		page.addText(marginLeft, y, 11, fontBold, row.label+":")
		page.addText(marginLeft+140, y, 11, fontRegular, row.value)
		y -= 18
	}

	y -= 18
	page.addText(marginLeft, y, 9, fontRegular, f.QRPayload)
	return page.render(), "application/pdf", nil
}
