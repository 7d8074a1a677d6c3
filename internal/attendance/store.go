package attendance

import "context"

// Store persists attendance events and records.
type Store interface {
	CreateEvent(ctx context.Context, e *Event) error
	FindEvent(ctx context.Context, id string) (*Event, error)
	// ListEvents returns events newest event date first, optionally filtered
	// by event type.
	ListEvents(ctx context.Context, eventType string) ([]*Event, error)
	SetEventTotals(ctx context.Context, eventID string, present, absent int) error

	// Upsert inserts the record, or overwrites the status of the existing
	// record for the same (event, member) pair.
	Upsert(ctx context.Context, r *Record) error
	ListByEvent(ctx context.Context, eventID string) ([]*Record, error)
	// ListByMember returns a member's records most recent first, using the
	// insertion sequence as tiebreaker for identical timestamps.
	ListByMember(ctx context.Context, memberID string) ([]*Record, error)
	// ListRecentByMember is ListByMember capped at limit records. It backs
	// the absence sweep, which only ever inspects the newest few.
	ListRecentByMember(ctx context.Context, memberID string, limit int) ([]*Record, error)
	CountEventStatus(ctx context.Context, eventID string, status RecordStatus) (int, error)
	CountEvents(ctx context.Context) (int, error)
}
