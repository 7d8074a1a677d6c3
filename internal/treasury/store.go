package treasury

import "context"

// Store persists the treasury ledger.
type Store interface {
	// Append writes the transaction, deriving BalanceAfter from the latest
	// line plus delta. The read and the write are one atomic step so two
	// concurrent appends cannot both build on the same previous balance.
	Append(ctx context.Context, t *Transaction, delta float64) error
	// List returns transactions newest first, optionally filtered by type.
	List(ctx context.Context, transactionType string) ([]*Transaction, error)
	// CurrentBalance is the BalanceAfter of the latest line, zero when empty.
	CurrentBalance(ctx context.Context) (float64, error)
	// TotalsByType sums amounts per transaction type.
	TotalsByType(ctx context.Context) (map[TransactionType]float64, error)
}
