package warning

import (
	"fmt"
	"strings"
	"time"
)

// LetterFields is everything a letter renderer needs. Values come from the
// warning snapshot, never from the live member record.
type LetterFields struct {
	OrgName          string
	Tagline          string
	Contact          string
	Date             string
	RefNumber        string
	MemberName       string
	MembershipNumber string
	Subject          string
	Body             []string
	Signatory        string
	Footer           string
}

// EmailFields feeds the warning email template.
type EmailFields struct {
	To                  string
	Subject             string
	OrgName             string
	Tagline             string
	MemberName          string
	ConsecutiveAbsences int
	Footer              string
}

const (
	orgTagline = "Excellence in Harmony • Unity in Worship"
	orgContact = "P.O. Box 12345, Nairobi, Kenya | Email: info@blossomfamilychoir.org"
	orgFooter  = `"Making a joyful noise unto the Lord"`
)

// RefNumber builds the letter reference code:
// BFCMS/ATT/WRN/<YYYYMMDD>/<last four of the membership number>.
func RefNumber(now time.Time, membershipNumber string) string {
	suffix := membershipNumber
	if len(suffix) > 4 {
		suffix = suffix[len(suffix)-4:]
	}
	return fmt.Sprintf("BFCMS/ATT/WRN/%s/%s", now.Format("20060102"), suffix)
}

// BuildLetterFields assembles the letter for a warning. The date and the
// reference code reflect when the letter is generated, not when the warning
// was raised.
func BuildLetterFields(w *Warning, orgName string, now time.Time) LetterFields {
	return LetterFields{
		OrgName:          strings.ToUpper(orgName),
		Tagline:          orgTagline,
		Contact:          orgContact,
		Date:             now.Format("January 02, 2006"),
		RefNumber:        RefNumber(now, w.MembershipNumber),
		MemberName:       w.MemberName,
		MembershipNumber: w.MembershipNumber,
		Subject:          "RE: ATTENDANCE WARNING NOTICE",
		Body: []string{
			fmt.Sprintf("Dear %s,", w.MemberName),
			fmt.Sprintf("This letter serves as an official warning regarding your attendance record with %s.", orgName),
			fmt.Sprintf("Our records indicate that you have been absent from %d consecutive choir meetings/rehearsals without prior notification or approved excuse. As per our choir constitution and attendance policy, regular attendance is essential for maintaining harmony, unity, and the overall success of our choir ministry.", w.ConsecutiveAbsences),
			"We understand that unforeseen circumstances may arise; however, consistent absence affects not only your own growth and participation but also the collective effort of the entire choir family.",
			"Required Actions:",
			"1. Please contact the Secretary or your Department Head within 7 days of receiving this letter to explain your absences.",
			"2. If you are facing any challenges preventing your attendance, we encourage you to share them so we can provide appropriate support.",
			"3. Failure to respond or continued absence may result in further disciplinary action as outlined in our constitution.",
			fmt.Sprintf("We value your membership and contributions to %s. We hope to see you at our next gathering and trust that this matter will be resolved amicably.", orgName),
			"May God bless you.",
		},
		Signatory: "Choir Secretary",
		Footer:    orgFooter,
	}
}

// BuildEmailFields assembles the warning email for a warning snapshot.
func BuildEmailFields(w *Warning, orgName string) EmailFields {
	return EmailFields{
		To:                  w.MemberEmail,
		Subject:             fmt.Sprintf("Attendance Warning Notice - %s", orgName),
		OrgName:             orgName,
		Tagline:             orgTagline,
		MemberName:          w.MemberName,
		ConsecutiveAbsences: w.ConsecutiveAbsences,
		Footer:              orgFooter,
	}
}

// RenderEmailHTML produces the HTML body for the warning email.
func RenderEmailHTML(f EmailFields) string {
	var b strings.Builder
	b.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">`)
	fmt.Fprintf(&b, `<div style="background-color: #1E3A5F; padding: 20px; text-align: center;"><h1 style="color: #F7931E; margin: 0;">%s</h1><p style="color: white; margin: 5px 0;">%s</p></div>`, f.OrgName, f.Tagline)
	b.WriteString(`<div style="padding: 30px; background-color: #f9f9f9;">`)
	b.WriteString(`<h2 style="color: #1E3A5F;">Attendance Warning Notice</h2>`)
	fmt.Fprintf(&b, `<p>Dear <strong>%s</strong>,</p>`, f.MemberName)
	fmt.Fprintf(&b, `<p>This email serves as an official warning regarding your attendance record with %s.</p>`, f.OrgName)
	fmt.Fprintf(&b, `<p>Our records indicate that you have been absent from <strong>%d consecutive</strong> choir meetings/rehearsals.</p>`, f.ConsecutiveAbsences)
	b.WriteString(`<div style="background-color: #fff3cd; border: 1px solid #ffc107; padding: 15px; border-radius: 5px; margin: 20px 0;"><strong>Required Actions:</strong><ul><li>Please contact the Secretary within 7 days</li><li>Explain your absences or challenges</li><li>Continued absence may result in disciplinary action</li></ul></div>`)
	b.WriteString(`<p>We value your membership and hope to see you at our next gathering.</p>`)
	b.WriteString(`<p>May God bless you.</p>`)
	fmt.Fprintf(&b, `<p><strong>Choir Secretary</strong><br>%s</p>`, f.OrgName)
	b.WriteString(`</div>`)
	fmt.Fprintf(&b, `<div style="background-color: #1E3A5F; padding: 10px; text-align: center;"><p style="color: #F7931E; margin: 0; font-style: italic;">%s</p></div>`, f.Footer)
	b.WriteString(`</div>`)
	return b.String()
}
