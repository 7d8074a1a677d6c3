package attendance

import (
	"strings"
	"time"

	dErrors "bfcms/pkg/domain-errors"
)

// RecordStatus is the outcome marked for one member at one event.
type RecordStatus string

const (
	StatusPresent RecordStatus = "present"
	StatusAbsent  RecordStatus = "absent"
	StatusExcused RecordStatus = "excused"
)

func (s RecordStatus) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusExcused:
		return true
	}
	return false
}

// Event is a gathering attendance is taken for. Totals are maintained on the
// event after each marking batch so listings don't need a records join.
type Event struct {
	ID           string    `json:"id"`
	EventName    string    `json:"event_name"`
	EventDate    string    `json:"event_date"`
	EventType    string    `json:"event_type"`
	CreatedBy    string    `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	TotalPresent int       `json:"total_present"`
	TotalAbsent  int       `json:"total_absent"`
}

// EventCreateRequest is the payload for creating an attendance event.
type EventCreateRequest struct {
	EventName string `json:"event_name"`
	EventDate string `json:"event_date"`
	EventType string `json:"event_type"`
}

func (r *EventCreateRequest) Validate() error {
	r.EventName = strings.TrimSpace(r.EventName)
	r.EventType = strings.TrimSpace(r.EventType)
	if r.EventName == "" {
		return dErrors.New(dErrors.CodeValidation, "event name is required")
	}
	if r.EventType == "" {
		return dErrors.New(dErrors.CodeValidation, "event type is required")
	}
	if _, err := time.Parse("2006-01-02", r.EventDate); err != nil {
		return dErrors.New(dErrors.CodeValidation, "event_date must be YYYY-MM-DD")
	}
	return nil
}

// Record is one member's attendance at one event. At most one record exists
// per (event, member); re-marking overwrites Status in place. Seq is an
// insertion sequence used as the stable tiebreaker when records share a
// timestamp.
type Record struct {
	ID               string       `json:"id"`
	EventID          string       `json:"event_id"`
	MemberID         string       `json:"member_id"`
	MemberName       string       `json:"member_name"`
	MembershipNumber string       `json:"membership_number"`
	Status           RecordStatus `json:"status"`
	MarkedBy         string       `json:"marked_by"`
	CreatedAt        time.Time    `json:"created_at"`
	Seq              int64        `json:"-"`
}

// Mark is one entry in a marking batch.
type Mark struct {
	EventID  string       `json:"event_id"`
	MemberID string       `json:"member_id"`
	Status   RecordStatus `json:"status"`
}

// MarkOutcome reports what happened to a single mark in a batch.
type MarkOutcome struct {
	MemberID string       `json:"member_id"`
	Status   RecordStatus `json:"status"`
}

// MemberSummary aggregates a member's attendance history.
type MemberSummary struct {
	MemberID       string    `json:"member_id"`
	TotalEvents    int       `json:"total_events"`
	Present        int       `json:"present"`
	Absent         int       `json:"absent"`
	Excused        int       `json:"excused"`
	AttendanceRate float64   `json:"attendance_rate"`
	Records        []*Record `json:"records"`
}
