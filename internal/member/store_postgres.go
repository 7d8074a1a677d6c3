package member

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"bfcms/pkg/platform/sentinel"
)

// PostgresStore persists members in the members table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const memberColumns = `id, membership_number, full_name, id_number, phone, email,
	department, date_joined, status, photo, created_at, created_by`

func (s *PostgresStore) Create(ctx context.Context, m *Member) error {
	query := `
		INSERT INTO members (id, membership_number, full_name, id_number, phone, email,
			department, date_joined, status, photo, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := s.db.ExecContext(ctx, query,
		m.ID, m.MembershipNumber, m.FullName, m.IDNumber, m.Phone, m.Email,
		m.Department, m.DateJoined, m.Status, nullable(m.Photo), m.CreatedAt, m.CreatedBy)
	if err != nil {
		return fmt.Errorf("inserting member: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*Member, error) {
	query := fmt.Sprintf(`SELECT %s FROM members WHERE id = $1`, memberColumns)
	row := s.db.QueryRowContext(ctx, query, id)
	m, err := scanMember(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	return m, err
}

func (s *PostgresStore) List(ctx context.Context, filter Filter) ([]*Member, error) {
	var (
		conditions []string
		args       []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.Department != "" {
		conditions = append(conditions, "department = "+arg(filter.Department))
	}
	if filter.Status != "" {
		conditions = append(conditions, "status = "+arg(filter.Status))
	}
	if filter.Search != "" {
		pattern := arg("%" + filter.Search + "%")
		conditions = append(conditions, fmt.Sprintf(
			"(full_name ILIKE %s OR membership_number ILIKE %s OR email ILIKE %s)", pattern, pattern, pattern))
	}

	query := fmt.Sprintf(`SELECT %s FROM members`, memberColumns)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	defer rows.Close()

	var members []*Member
	for rows.Next() {
		m, err := scanMember(rows.Scan)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (s *PostgresStore) ListActive(ctx context.Context) ([]*Member, error) {
	return s.List(ctx, Filter{Status: string(StatusActive)})
}

func (s *PostgresStore) Update(ctx context.Context, m *Member) error {
	query := `
		UPDATE members
		SET full_name = $2, id_number = $3, phone = $4, email = $5,
			department = $6, status = $7, photo = $8
		WHERE id = $1`
	res, err := s.db.ExecContext(ctx, query,
		m.ID, m.FullName, m.IDNumber, m.Phone, m.Email, m.Department, m.Status, nullable(m.Photo))
	if err != nil {
		return fmt.Errorf("updating member: %w", err)
	}
	return requireAffected(res)
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting member: %w", err)
	}
	return requireAffected(res)
}

func (s *PostgresStore) CountJoinedInYear(ctx context.Context, year int) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM members WHERE EXTRACT(YEAR FROM date_joined) = $1`, year).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting members by join year: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM members`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting members: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) CountByStatus(ctx context.Context, status Status) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM members WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting members by status: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) CountActiveByDepartment(ctx context.Context) (map[Department]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT department, COUNT(*) FROM members WHERE status = 'active' GROUP BY department`)
	if err != nil {
		return nil, fmt.Errorf("counting members by department: %w", err)
	}
	defer rows.Close()

	counts := make(map[Department]int)
	for rows.Next() {
		var dept Department
		var count int
		if err := rows.Scan(&dept, &count); err != nil {
			return nil, fmt.Errorf("scanning department count: %w", err)
		}
		counts[dept] = count
	}
	return counts, rows.Err()
}

func scanMember(scan func(dest ...any) error) (*Member, error) {
	var m Member
	var photo sql.NullString
	err := scan(&m.ID, &m.MembershipNumber, &m.FullName, &m.IDNumber, &m.Phone, &m.Email,
		&m.Department, &m.DateJoined, &m.Status, &photo, &m.CreatedAt, &m.CreatedBy)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning member: %w", err)
	}
	m.Photo = photo.String
	return &m, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
