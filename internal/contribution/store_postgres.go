package contribution

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresStore persists contributions in the contributions table. The seq
// column is a BIGSERIAL giving insertion order.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, c *Contribution) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO contributions (id, member_id, member_name, membership_number,
			amount, contribution_type, description, date, recorded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID, c.MemberID, c.MemberName, c.MembershipNumber,
		c.Amount, c.ContributionType, nullable(c.Description), c.Date, c.RecordedBy, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating contribution: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, f Filter) ([]*Contribution, error) {
	query := `
		SELECT id, member_id, member_name, membership_number, amount,
			contribution_type, description, date, recorded_by, created_at, seq
		FROM contributions`
	var conditions []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.MemberID != "" {
		conditions = append(conditions, "member_id = "+arg(f.MemberID))
	}
	if f.ContributionType != "" {
		conditions = append(conditions, "contribution_type = "+arg(f.ContributionType))
	}
	for i, c := range conditions {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY seq DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing contributions: %w", err)
	}
	defer rows.Close()

	var contributions []*Contribution
	for rows.Next() {
		var c Contribution
		var description sql.NullString
		if err := rows.Scan(&c.ID, &c.MemberID, &c.MemberName, &c.MembershipNumber, &c.Amount,
			&c.ContributionType, &description, &c.Date, &c.RecordedBy, &c.CreatedAt, &c.Seq); err != nil {
			return nil, fmt.Errorf("scanning contribution: %w", err)
		}
		c.Description = description.String
		contributions = append(contributions, &c)
	}
	return contributions, rows.Err()
}

func (s *PostgresStore) TotalsByType(ctx context.Context) ([]TypeTotal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT contribution_type, COALESCE(SUM(amount), 0), COUNT(*)
		FROM contributions
		GROUP BY contribution_type
		ORDER BY SUM(amount) DESC`)
	if err != nil {
		return nil, fmt.Errorf("summing contributions by type: %w", err)
	}
	defer rows.Close()

	var totals []TypeTotal
	for rows.Next() {
		var t TypeTotal
		if err := rows.Scan(&t.ContributionType, &t.Total, &t.Count); err != nil {
			return nil, fmt.Errorf("scanning contribution total: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

func (s *PostgresStore) TopContributors(ctx context.Context, limit int) ([]Contributor, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT member_id, MIN(member_name), COALESCE(SUM(amount), 0) AS total
		FROM contributions
		GROUP BY member_id
		ORDER BY total DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("ranking contributors: %w", err)
	}
	defer rows.Close()

	var contributors []Contributor
	for rows.Next() {
		var c Contributor
		if err := rows.Scan(&c.MemberID, &c.MemberName, &c.Total); err != nil {
			return nil, fmt.Errorf("scanning contributor: %w", err)
		}
		contributors = append(contributors, c)
	}
	return contributors, rows.Err()
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contributions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting contributions: %w", err)
	}
	return count, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
