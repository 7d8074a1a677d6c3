package treasury

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresStore persists the ledger in the treasury table, whose seq column
// is a BIGSERIAL giving total append order.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// ledgerLockID keys the advisory lock serializing appends.
const ledgerLockID = 0x62666373 // "bfcs"

// Append derives the running balance inside the INSERT. An advisory lock
// serializes concurrent appends so no two lines build on the same previous
// balance.
func (s *PostgresStore) Append(ctx context.Context, t *Transaction, delta float64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning treasury append: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, ledgerLockID); err != nil {
		return fmt.Errorf("locking treasury ledger: %w", err)
	}

	query := `
		INSERT INTO treasury (id, transaction_type, amount, description, category,
			reference, balance_after, recorded_by, recorded_by_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6,
			COALESCE((SELECT balance_after FROM treasury ORDER BY seq DESC LIMIT 1), 0) + $7,
			$8, $9, $10)
		RETURNING balance_after`
	err = tx.QueryRowContext(ctx, query,
		t.ID, t.TransactionType, t.Amount, t.Description, t.Category,
		nullable(t.Reference), delta, t.RecordedBy, t.RecordedByName, t.CreatedAt,
	).Scan(&t.BalanceAfter)
	if err != nil {
		return fmt.Errorf("appending treasury transaction: %w", err)
	}
	return tx.Commit()
}

func (s *PostgresStore) List(ctx context.Context, transactionType string) ([]*Transaction, error) {
	query := `
		SELECT id, transaction_type, amount, description, category, reference,
			balance_after, recorded_by, recorded_by_name, created_at, seq
		FROM treasury`
	var args []any
	if transactionType != "" {
		query += ` WHERE transaction_type = $1`
		args = append(args, transactionType)
	}
	query += ` ORDER BY seq DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing treasury transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*Transaction
	for rows.Next() {
		var t Transaction
		var reference sql.NullString
		if err := rows.Scan(&t.ID, &t.TransactionType, &t.Amount, &t.Description, &t.Category,
			&reference, &t.BalanceAfter, &t.RecordedBy, &t.RecordedByName, &t.CreatedAt, &t.Seq); err != nil {
			return nil, fmt.Errorf("scanning treasury transaction: %w", err)
		}
		t.Reference = reference.String
		transactions = append(transactions, &t)
	}
	return transactions, rows.Err()
}

func (s *PostgresStore) CurrentBalance(ctx context.Context) (float64, error) {
	var balance float64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE((SELECT balance_after FROM treasury ORDER BY seq DESC LIMIT 1), 0)`).Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("reading treasury balance: %w", err)
	}
	return balance, nil
}

func (s *PostgresStore) TotalsByType(ctx context.Context) (map[TransactionType]float64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT transaction_type, COALESCE(SUM(amount), 0) FROM treasury GROUP BY transaction_type`)
	if err != nil {
		return nil, fmt.Errorf("summing treasury by type: %w", err)
	}
	defer rows.Close()

	totals := make(map[TransactionType]float64)
	for rows.Next() {
		var tt TransactionType
		var total float64
		if err := rows.Scan(&tt, &total); err != nil {
			return nil, fmt.Errorf("scanning treasury total: %w", err)
		}
		totals[tt] = total
	}
	return totals, rows.Err()
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
