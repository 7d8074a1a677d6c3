package treasury

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"bfcms/pkg/requestcontext"
)

// Service implements the treasury ledger.
type Service struct {
	store  Store
	logger *slog.Logger
}

func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Record appends a transaction. Income and contributions increase the running
// balance; expenses decrease it.
func (s *Service) Record(ctx context.Context, req CreateRequest) (*Transaction, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	actor := requestcontext.Actor(ctx)
	t := &Transaction{
		ID:              uuid.NewString(),
		TransactionType: req.TransactionType,
		Amount:          req.Amount,
		Description:     req.Description,
		Category:        req.Category,
		Reference:       req.Reference,
		RecordedBy:      actor.UserID,
		RecordedByName:  actor.FullName,
		CreatedAt:       requestcontext.Now(ctx),
	}

	delta := req.Amount
	if req.TransactionType == TypeExpense {
		delta = -req.Amount
	}
	if err := s.store.Append(ctx, t, delta); err != nil {
		return nil, fmt.Errorf("recording treasury transaction: %w", err)
	}
	s.logger.InfoContext(ctx, "treasury transaction recorded",
		"transaction_id", t.ID, "type", t.TransactionType, "amount", t.Amount, "balance", t.BalanceAfter)
	return t, nil
}

// RecordContribution mirrors a member contribution into the ledger. The
// reference ties the line back to the contribution record.
func (s *Service) RecordContribution(ctx context.Context, amount float64, description, reference string) error {
	_, err := s.Record(ctx, CreateRequest{
		TransactionType: TypeContribution,
		Amount:          amount,
		Description:     description,
		Category:        "contribution",
		Reference:       reference,
	})
	return err
}

// List returns transactions newest first, optionally filtered by type.
func (s *Service) List(ctx context.Context, transactionType string) ([]*Transaction, error) {
	transactions, err := s.store.List(ctx, transactionType)
	if err != nil {
		return nil, fmt.Errorf("listing treasury transactions: %w", err)
	}
	if transactions == nil {
		transactions = []*Transaction{}
	}
	return transactions, nil
}

// Summary reports the current balance and per-type totals.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	balance, err := s.store.CurrentBalance(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading treasury balance: %w", err)
	}
	totals, err := s.store.TotalsByType(ctx)
	if err != nil {
		return nil, fmt.Errorf("summing treasury: %w", err)
	}
	return &Summary{
		CurrentBalance:     balance,
		TotalIncome:        totals[TypeIncome],
		TotalExpenses:      totals[TypeExpense],
		TotalContributions: totals[TypeContribution],
	}, nil
}
