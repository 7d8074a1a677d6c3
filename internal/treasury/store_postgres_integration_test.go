//go:build integration

package treasury_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bfcms/internal/treasury"
	"bfcms/pkg/testutil/containers"
)

const treasurySchema = `
CREATE TABLE IF NOT EXISTS treasury (
	seq BIGSERIAL PRIMARY KEY,
	id TEXT NOT NULL,
	transaction_type TEXT NOT NULL,
	amount DOUBLE PRECISION NOT NULL,
	description TEXT NOT NULL,
	category TEXT NOT NULL,
	reference TEXT,
	balance_after DOUBLE PRECISION NOT NULL,
	recorded_by TEXT NOT NULL,
	recorded_by_name TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
)`

func newTransaction(id string, tt treasury.TransactionType, amount float64) *treasury.Transaction {
	return &treasury.Transaction{
		ID:              id,
		TransactionType: tt,
		Amount:          amount,
		Description:     "line",
		Category:        "general",
		RecordedBy:      "tr-1",
		RecordedByName:  "The Treasurer",
		CreatedAt:       time.Date(2025, 8, 5, 10, 0, 0, 0, time.UTC),
	}
}

func TestPostgresRunningBalance(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	pg.ApplySchema(t, treasurySchema)
	store := treasury.NewPostgresStore(pg.DB)
	ctx := context.Background()

	income := newTransaction("t1", treasury.TypeIncome, 1000)
	require.NoError(t, store.Append(ctx, income, 1000))
	assert.Equal(t, 1000.0, income.BalanceAfter)

	expense := newTransaction("t2", treasury.TypeExpense, 300)
	require.NoError(t, store.Append(ctx, expense, -300))
	assert.Equal(t, 700.0, expense.BalanceAfter)

	balance, err := store.CurrentBalance(ctx)
	require.NoError(t, err)
	assert.Equal(t, 700.0, balance)

	all, err := store.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "t2", all[0].ID)

	totals, err := store.TotalsByType(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, totals[treasury.TypeIncome])
	assert.Equal(t, 300.0, totals[treasury.TypeExpense])
}

func TestPostgresConcurrentAppends(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	pg.ApplySchema(t, treasurySchema)
	store := treasury.NewPostgresStore(pg.DB)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tr := newTransaction(fmt.Sprintf("t%d", i), treasury.TypeIncome, 10)
			require.NoError(t, store.Append(ctx, tr, 10))
		}(i)
	}
	wg.Wait()

	balance, err := store.CurrentBalance(ctx)
	require.NoError(t, err)
	assert.Equal(t, float64(n*10), balance)

	// Every line's balance must be exactly 10 more than the previous line's.
	all, err := store.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, n)
	for i, tr := range all {
		assert.Equal(t, float64((n-i)*10), tr.BalanceAfter)
	}
}
