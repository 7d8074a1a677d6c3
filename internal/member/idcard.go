package member

import (
	"fmt"
	"strings"
)

// QRPayload is the pipe-delimited string encoded on a member's ID card:
// BFCMS|<membership number>|<full name>|<department>.
func QRPayload(m *Member) string {
	return fmt.Sprintf("BFCMS|%s|%s|%s", m.MembershipNumber, m.FullName, m.Department)
}

// CardFields is everything a card renderer needs to lay out an ID card.
type CardFields struct {
	OrgName          string `json:"org_name"`
	FullName         string `json:"full_name"`
	MembershipNumber string `json:"membership_number"`
	Department       string `json:"department"`
	DateJoined       string `json:"date_joined"`
	Status           string `json:"status"`
	Photo            string `json:"photo,omitempty"`
	QRPayload        string `json:"qr_payload"`
}

// BuildCardFields assembles the ID-card fields for a member.
func BuildCardFields(m *Member, orgName string) CardFields {
	return CardFields{
		OrgName:          orgName,
		FullName:         m.FullName,
		MembershipNumber: m.MembershipNumber,
		Department:       titleCase(string(m.Department)),
		DateJoined:       m.DateJoined.Format("2006-01-02"),
		Status:           titleCase(string(m.Status)),
		Photo:            m.Photo,
		QRPayload:        QRPayload(m),
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
