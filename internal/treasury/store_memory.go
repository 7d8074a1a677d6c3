package treasury

import (
	"context"
	"sort"
	"sync"
)

// InMemoryStore is the non-persistent ledger used in tests and local runs.
type InMemoryStore struct {
	mu           sync.RWMutex
	transactions []*Transaction
	nextSeq      int64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, t *Transaction, delta float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	balance := 0.0
	if n := len(s.transactions); n > 0 {
		balance = s.transactions[n-1].BalanceAfter
	}
	s.nextSeq++
	cp := *t
	cp.Seq = s.nextSeq
	cp.BalanceAfter = balance + delta
	s.transactions = append(s.transactions, &cp)
	t.BalanceAfter = cp.BalanceAfter
	return nil
}

func (s *InMemoryStore) List(_ context.Context, transactionType string) ([]*Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Transaction
	for _, t := range s.transactions {
		if transactionType != "" && string(t.TransactionType) != transactionType {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq > out[j].Seq })
	return out, nil
}

func (s *InMemoryStore) CurrentBalance(_ context.Context) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n := len(s.transactions); n > 0 {
		return s.transactions[n-1].BalanceAfter, nil
	}
	return 0, nil
}

func (s *InMemoryStore) TotalsByType(_ context.Context) (map[TransactionType]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	totals := make(map[TransactionType]float64)
	for _, t := range s.transactions {
		totals[t.TransactionType] += t.Amount
	}
	return totals, nil
}
