package notice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bfcms/pkg/platform/sentinel"
)

// PostgresStore persists notices in the notices table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, n *Notice) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notices (id, title, content, target_department, expiry_date,
			has_attachment, attachment_name, attachment_type, attachment_data,
			created_by, created_by_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		n.ID, n.Title, n.Content, nullable(n.TargetDepartment), nullable(n.ExpiryDate),
		n.HasAttachment, nullable(n.AttachmentName), nullable(string(n.AttachmentType)),
		nullable(n.AttachmentData), n.CreatedBy, n.CreatedByName, n.CreatedAt, n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating notice: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*Notice, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, content, target_department, expiry_date, has_attachment,
			attachment_name, attachment_type, attachment_data, created_by,
			created_by_name, created_at, updated_at
		FROM notices WHERE id = $1`, id)
	return scanNotice(row.Scan)
}

func (s *PostgresStore) List(ctx context.Context, department string) ([]*Notice, error) {
	query := `
		SELECT id, title, content, target_department, expiry_date, has_attachment,
			attachment_name, attachment_type, attachment_data, created_by,
			created_by_name, created_at, updated_at
		FROM notices`
	var args []any
	if department != "" {
		// Broadcasts have no target department and reach everyone.
		query += ` WHERE target_department IS NULL OR target_department = $1`
		args = append(args, department)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing notices: %w", err)
	}
	defer rows.Close()

	var notices []*Notice
	for rows.Next() {
		n, err := scanNotice(rows.Scan)
		if err != nil {
			return nil, err
		}
		notices = append(notices, n)
	}
	return notices, rows.Err()
}

func (s *PostgresStore) Update(ctx context.Context, n *Notice) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE notices
		SET title = $2, content = $3, target_department = $4, expiry_date = $5,
			has_attachment = $6, attachment_name = $7, attachment_type = $8,
			attachment_data = $9, updated_at = $10
		WHERE id = $1`,
		n.ID, n.Title, n.Content, nullable(n.TargetDepartment), nullable(n.ExpiryDate),
		n.HasAttachment, nullable(n.AttachmentName), nullable(string(n.AttachmentType)),
		nullable(n.AttachmentData), n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("updating notice: %w", err)
	}
	return requireAffected(res)
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting notice: %w", err)
	}
	return requireAffected(res)
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notices`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting notices: %w", err)
	}
	return count, nil
}

func scanNotice(scan func(dest ...any) error) (*Notice, error) {
	var n Notice
	var target, expiry, attName, attType, attData sql.NullString
	var updatedAt sql.NullTime
	err := scan(&n.ID, &n.Title, &n.Content, &target, &expiry, &n.HasAttachment,
		&attName, &attType, &attData, &n.CreatedBy, &n.CreatedByName, &n.CreatedAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning notice: %w", err)
	}
	n.TargetDepartment = target.String
	n.ExpiryDate = expiry.String
	n.AttachmentName = attName.String
	n.AttachmentType = AttachmentType(attType.String)
	n.AttachmentData = attData.String
	if updatedAt.Valid {
		t := updatedAt.Time
		n.UpdatedAt = &t
	}
	return &n, nil
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
