package warning

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bfcms/pkg/platform/sentinel"
)

// PostgresStore persists the ledger in the warnings table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const warningColumns = `id, member_id, member_name, membership_number, member_email,
	consecutive_absences, warning_type, letter_generated, email_sent, created_at`

// RaiseIfNoneSince checks the suppression window and inserts under a
// per-member advisory lock, so two concurrent sweeps cannot both raise for
// the same member.
func (s *PostgresStore) RaiseIfNoneSince(ctx context.Context, w *Warning, since time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning warning raise: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`SELECT pg_advisory_xact_lock(hashtext($1))`, w.MemberID+"/"+w.WarningType); err != nil {
		return fmt.Errorf("locking warning ledger: %w", err)
	}

	query := `
		INSERT INTO warnings (id, member_id, member_name, membership_number, member_email,
			consecutive_absences, warning_type, letter_generated, email_sent, created_at)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		WHERE NOT EXISTS (
			SELECT 1 FROM warnings
			WHERE member_id = $2 AND warning_type = $7 AND created_at >= $11
		)`
	res, err := tx.ExecContext(ctx, query,
		w.ID, w.MemberID, w.MemberName, w.MembershipNumber, w.MemberEmail,
		w.ConsecutiveAbsences, w.WarningType, w.LetterGenerated, w.EmailSent, w.CreatedAt, since)
	if err != nil {
		return fmt.Errorf("raising warning: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing warning raise: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrSuppressed
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*Warning, error) {
	query := fmt.Sprintf(`SELECT %s FROM warnings WHERE id = $1`, warningColumns)
	var w Warning
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&w.ID, &w.MemberID, &w.MemberName, &w.MembershipNumber, &w.MemberEmail,
		&w.ConsecutiveAbsences, &w.WarningType, &w.LetterGenerated, &w.EmailSent, &w.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning warning: %w", err)
	}
	return &w, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*Warning, error) {
	query := fmt.Sprintf(`SELECT %s FROM warnings ORDER BY created_at DESC`, warningColumns)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing warnings: %w", err)
	}
	defer rows.Close()

	var warnings []*Warning
	for rows.Next() {
		var w Warning
		if err := rows.Scan(&w.ID, &w.MemberID, &w.MemberName, &w.MembershipNumber, &w.MemberEmail,
			&w.ConsecutiveAbsences, &w.WarningType, &w.LetterGenerated, &w.EmailSent, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning warning: %w", err)
		}
		warnings = append(warnings, &w)
	}
	return warnings, rows.Err()
}

func (s *PostgresStore) SetLetterGenerated(ctx context.Context, id string) error {
	return s.flip(ctx, `UPDATE warnings SET letter_generated = TRUE WHERE id = $1`, id)
}

func (s *PostgresStore) SetEmailSent(ctx context.Context, id string) error {
	return s.flip(ctx, `UPDATE warnings SET email_sent = TRUE WHERE id = $1`, id)
}

func (s *PostgresStore) CountPendingEmail(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM warnings WHERE email_sent = FALSE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting pending warnings: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) flip(ctx context.Context, query, id string) error {
	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("updating warning flag: %w", err)
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
