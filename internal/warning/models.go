package warning

import "time"

// TypeAttendance is the only warning type the monitor raises today. The
// column exists so other warning categories can share the ledger later.
const TypeAttendance = "attendance"

// Warning is one entry in the append-only warning ledger. MemberName,
// MembershipNumber and MemberEmail are snapshots taken when the warning was
// raised; they are never re-synced from the member record, so letters and
// emails always reflect the member as they were at that moment.
//
// LetterGenerated and EmailSent are monotonic: they flip false to true once
// and never back.
type Warning struct {
	ID                  string    `json:"id"`
	MemberID            string    `json:"member_id"`
	MemberName          string    `json:"member_name"`
	MembershipNumber    string    `json:"membership_number"`
	MemberEmail         string    `json:"member_email"`
	ConsecutiveAbsences int       `json:"consecutive_absences"`
	WarningType         string    `json:"warning_type"`
	LetterGenerated     bool      `json:"letter_generated"`
	EmailSent           bool      `json:"email_sent"`
	CreatedAt           time.Time `json:"created_at"`
}
