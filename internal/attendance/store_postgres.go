package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bfcms/pkg/platform/sentinel"
)

// PostgresStore persists attendance in the attendance_events and
// attendance_records tables. attendance_records carries a
// UNIQUE(event_id, member_id) constraint and a BIGSERIAL seq column.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) CreateEvent(ctx context.Context, e *Event) error {
	query := `
		INSERT INTO attendance_events (id, event_name, event_date, event_type,
			created_by, created_at, total_present, total_absent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := s.db.ExecContext(ctx, query,
		e.ID, e.EventName, e.EventDate, e.EventType, e.CreatedBy, e.CreatedAt, e.TotalPresent, e.TotalAbsent)
	if err != nil {
		return fmt.Errorf("inserting attendance event: %w", err)
	}
	return nil
}

const eventColumns = `id, event_name, event_date, event_type, created_by, created_at, total_present, total_absent`

func (s *PostgresStore) FindEvent(ctx context.Context, id string) (*Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM attendance_events WHERE id = $1`, eventColumns)
	var e Event
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.EventName, &e.EventDate, &e.EventType, &e.CreatedBy, &e.CreatedAt, &e.TotalPresent, &e.TotalAbsent)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning attendance event: %w", err)
	}
	return &e, nil
}

func (s *PostgresStore) ListEvents(ctx context.Context, eventType string) ([]*Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM attendance_events`, eventColumns)
	var args []any
	if eventType != "" {
		query += ` WHERE event_type = $1`
		args = append(args, eventType)
	}
	query += ` ORDER BY event_date DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing attendance events: %w", err)
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.EventName, &e.EventDate, &e.EventType,
			&e.CreatedBy, &e.CreatedAt, &e.TotalPresent, &e.TotalAbsent); err != nil {
			return nil, fmt.Errorf("scanning attendance event: %w", err)
		}
		events = append(events, &e)
	}
	return events, rows.Err()
}

func (s *PostgresStore) SetEventTotals(ctx context.Context, eventID string, present, absent int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE attendance_events SET total_present = $2, total_absent = $3 WHERE id = $1`,
		eventID, present, absent)
	if err != nil {
		return fmt.Errorf("updating event totals: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Upsert(ctx context.Context, r *Record) error {
	query := `
		INSERT INTO attendance_records
			(id, event_id, member_id, member_name, membership_number, status, marked_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (event_id, member_id) DO UPDATE SET status = EXCLUDED.status`
	_, err := s.db.ExecContext(ctx, query,
		r.ID, r.EventID, r.MemberID, r.MemberName, r.MembershipNumber, r.Status, r.MarkedBy, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("upserting attendance record: %w", err)
	}
	return nil
}

const recordColumns = `id, event_id, member_id, member_name, membership_number, status, marked_by, created_at, seq`

func (s *PostgresStore) ListByEvent(ctx context.Context, eventID string) ([]*Record, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM attendance_records WHERE event_id = $1 ORDER BY seq`, recordColumns)
	return s.queryRecords(ctx, query, eventID)
}

func (s *PostgresStore) ListByMember(ctx context.Context, memberID string) ([]*Record, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM attendance_records WHERE member_id = $1 ORDER BY created_at DESC, seq DESC`,
		recordColumns)
	return s.queryRecords(ctx, query, memberID)
}

func (s *PostgresStore) ListRecentByMember(ctx context.Context, memberID string, limit int) ([]*Record, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM attendance_records WHERE member_id = $1 ORDER BY created_at DESC, seq DESC LIMIT $2`,
		recordColumns)
	return s.queryRecords(ctx, query, memberID, limit)
}

func (s *PostgresStore) CountEventStatus(ctx context.Context, eventID string, status RecordStatus) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM attendance_records WHERE event_id = $1 AND status = $2`,
		eventID, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting attendance records: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) CountEvents(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM attendance_events`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting attendance events: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) queryRecords(ctx context.Context, query string, args ...any) ([]*Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing attendance records: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.EventID, &r.MemberID, &r.MemberName,
			&r.MembershipNumber, &r.Status, &r.MarkedBy, &r.CreatedAt, &r.Seq); err != nil {
			return nil, fmt.Errorf("scanning attendance record: %w", err)
		}
		records = append(records, &r)
	}
	return records, rows.Err()
}
