package document

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bfcms/pkg/platform/sentinel"
)

// PostgresStore persists documents in the documents table. Listings never
// select the file payload.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, d *Document) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, title, office, category, file_name, file_data,
			uploaded_by, uploaded_by_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		d.ID, d.Title, d.Office, d.Category, d.FileName, d.FileData,
		d.UploadedBy, d.UploadedByName, d.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating document: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*Document, error) {
	var d Document
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, office, category, file_name, file_data, uploaded_by,
			uploaded_by_name, created_at
		FROM documents WHERE id = $1`, id).
		Scan(&d.ID, &d.Title, &d.Office, &d.Category, &d.FileName, &d.FileData,
			&d.UploadedBy, &d.UploadedByName, &d.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding document: %w", err)
	}
	return &d, nil
}

func (s *PostgresStore) List(ctx context.Context, filter Filter) ([]*Document, error) {
	query := `
		SELECT id, title, office, category, file_name, uploaded_by,
			uploaded_by_name, created_at
		FROM documents`
	var conditions []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.Office != "" {
		conditions = append(conditions, "office = "+arg(filter.Office))
	}
	if filter.Category != "" {
		conditions = append(conditions, "category = "+arg(filter.Category))
	}
	for i, c := range conditions {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var documents []*Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.Title, &d.Office, &d.Category, &d.FileName,
			&d.UploadedBy, &d.UploadedByName, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		documents = append(documents, &d)
	}
	return documents, rows.Err()
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return count, nil
}
