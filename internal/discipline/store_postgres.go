package discipline

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bfcms/pkg/platform/sentinel"
)

// PostgresStore persists cases in the disciplinary_cases table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, c *Case) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO disciplinary_cases (id, member_id, member_name, membership_number,
			case_description, date_reported, committee_decision, sanctions, status,
			closure_date, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		c.ID, c.MemberID, c.MemberName, c.MembershipNumber,
		c.CaseDescription, c.DateReported, nullable(c.CommitteeDecision), nullable(c.Sanctions),
		c.Status, nullable(c.ClosureDate), c.CreatedBy, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating disciplinary case: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*Case, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, member_id, member_name, membership_number, case_description,
			date_reported, committee_decision, sanctions, status, closure_date,
			created_by, created_at
		FROM disciplinary_cases WHERE id = $1`, id)
	return scanCase(row.Scan)
}

func (s *PostgresStore) List(ctx context.Context, status string) ([]*Case, error) {
	query := `
		SELECT id, member_id, member_name, membership_number, case_description,
			date_reported, committee_decision, sanctions, status, closure_date,
			created_by, created_at
		FROM disciplinary_cases`
	var args []any
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing disciplinary cases: %w", err)
	}
	defer rows.Close()

	var cases []*Case
	for rows.Next() {
		c, err := scanCase(rows.Scan)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, rows.Err()
}

func (s *PostgresStore) Update(ctx context.Context, c *Case) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE disciplinary_cases
		SET case_description = $2, committee_decision = $3, sanctions = $4,
			status = $5, closure_date = $6
		WHERE id = $1`,
		c.ID, c.CaseDescription, nullable(c.CommitteeDecision), nullable(c.Sanctions),
		c.Status, nullable(c.ClosureDate))
	if err != nil {
		return fmt.Errorf("updating disciplinary case: %w", err)
	}
	return requireAffected(res)
}

func (s *PostgresStore) CountByStatus(ctx context.Context, status CaseStatus) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM disciplinary_cases WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting disciplinary cases: %w", err)
	}
	return count, nil
}

func scanCase(scan func(dest ...any) error) (*Case, error) {
	var c Case
	var decision, sanctions, closure sql.NullString
	err := scan(&c.ID, &c.MemberID, &c.MemberName, &c.MembershipNumber, &c.CaseDescription,
		&c.DateReported, &decision, &sanctions, &c.Status, &closure, &c.CreatedBy, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning disciplinary case: %w", err)
	}
	c.CommitteeDecision = decision.String
	c.Sanctions = sanctions.String
	c.ClosureDate = closure.String
	return &c, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
