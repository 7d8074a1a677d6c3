package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"bfcms/pkg/platform/sentinel"
)

// PostgresStore persists users in the users table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const userColumns = `id, email, password_hash, full_name, role, department, created_at`

func (s *PostgresStore) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (id, email, password_hash, full_name, role, department, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := s.db.ExecContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.FullName, user.Role, user.Department, user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	return s.scanOne(s.db.QueryRowContext(ctx, query, id))
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)
	return s.scanOne(s.db.QueryRowContext(ctx, query, email))
}

func (s *PostgresStore) List(ctx context.Context) ([]*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users ORDER BY created_at`, userColumns)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		var u User
		var department sql.NullString
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Role, &department, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		u.Department = department.String
		users = append(users, &u)
	}
	return users, rows.Err()
}

func (s *PostgresStore) UpdateRole(ctx context.Context, id string, role Role) error {
	return s.exec(ctx, `UPDATE users SET role = $2 WHERE id = $1`, id, role)
}

func (s *PostgresStore) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	return s.exec(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, id, passwordHash)
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	return s.exec(ctx, `DELETE FROM users WHERE id = $1`, id)
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) CountByRole(ctx context.Context) (map[Role]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT role, COUNT(*) FROM users GROUP BY role`)
	if err != nil {
		return nil, fmt.Errorf("counting users by role: %w", err)
	}
	defer rows.Close()

	counts := make(map[Role]int)
	for rows.Next() {
		var role Role
		var count int
		if err := rows.Scan(&role, &count); err != nil {
			return nil, fmt.Errorf("scanning role count: %w", err)
		}
		counts[role] = count
	}
	return counts, rows.Err()
}

func (s *PostgresStore) scanOne(row *sql.Row) (*User, error) {
	var u User
	var department sql.NullString
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Role, &department, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	u.Department = department.String
	return &u, nil
}

func (s *PostgresStore) exec(ctx context.Context, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
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
