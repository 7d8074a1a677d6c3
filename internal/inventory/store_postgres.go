package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bfcms/pkg/platform/sentinel"
)

// PostgresStore persists items in the inventory table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, item *Item) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO inventory (id, item_code, name, category, quantity, condition,
			description, assigned_to, assigned_department, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		item.ID, item.ItemCode, item.Name, item.Category, item.Quantity, item.Condition,
		nullable(item.Description), nullable(item.AssignedTo), nullable(item.AssignedDepartment),
		item.CreatedAt, item.CreatedBy)
	if err != nil {
		return fmt.Errorf("creating inventory item: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*Item, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, item_code, name, category, quantity, condition, description,
			assigned_to, assigned_department, created_at, created_by
		FROM inventory WHERE id = $1`, id)
	return scanItem(row.Scan)
}

func (s *PostgresStore) List(ctx context.Context, filter Filter) ([]*Item, error) {
	query := `
		SELECT id, item_code, name, category, quantity, condition, description,
			assigned_to, assigned_department, created_at, created_by
		FROM inventory`
	var conditions []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.Category != "" {
		conditions = append(conditions, "category = "+arg(filter.Category))
	}
	if filter.Condition != "" {
		conditions = append(conditions, "condition = "+arg(filter.Condition))
	}
	for i, c := range conditions {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY created_at"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing inventory: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		item, err := scanItem(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *PostgresStore) Update(ctx context.Context, item *Item) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE inventory
		SET name = $2, quantity = $3, condition = $4, description = $5,
			assigned_to = $6, assigned_department = $7
		WHERE id = $1`,
		item.ID, item.Name, item.Quantity, item.Condition,
		nullable(item.Description), nullable(item.AssignedTo), nullable(item.AssignedDepartment))
	if err != nil {
		return fmt.Errorf("updating inventory item: %w", err)
	}
	return requireAffected(res)
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM inventory WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting inventory item: %w", err)
	}
	return requireAffected(res)
}

func (s *PostgresStore) CountByCategory(ctx context.Context, category string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM inventory WHERE category = $1`, category).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting inventory by category: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM inventory`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting inventory: %w", err)
	}
	return count, nil
}

func scanItem(scan func(dest ...any) error) (*Item, error) {
	var item Item
	var description, assignedTo, assignedDept sql.NullString
	err := scan(&item.ID, &item.ItemCode, &item.Name, &item.Category, &item.Quantity,
		&item.Condition, &description, &assignedTo, &assignedDept, &item.CreatedAt, &item.CreatedBy)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning inventory item: %w", err)
	}
	item.Description = description.String
	item.AssignedTo = assignedTo.String
	item.AssignedDepartment = assignedDept.String
	return &item, nil
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
