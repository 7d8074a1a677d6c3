package treasury

import (
	"strings"
	"time"

	dErrors "bfcms/pkg/domain-errors"
)

// TransactionType classifies money movement. Income and contributions add to
// the balance; expenses subtract.
type TransactionType string

const (
	TypeIncome       TransactionType = "income"
	TypeExpense      TransactionType = "expense"
	TypeContribution TransactionType = "contribution"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TypeIncome, TypeExpense, TypeContribution:
		return true
	}
	return false
}

// Transaction is one ledger line. BalanceAfter is the running balance after
// this transaction, derived from the previous line when it is appended.
type Transaction struct {
	ID              string          `json:"id"`
	TransactionType TransactionType `json:"transaction_type"`
	Amount          float64         `json:"amount"`
	Description     string          `json:"description"`
	Category        string          `json:"category"`
	Reference       string          `json:"reference,omitempty"`
	BalanceAfter    float64         `json:"balance_after"`
	RecordedBy      string          `json:"recorded_by"`
	RecordedByName  string          `json:"recorded_by_name"`
	CreatedAt       time.Time       `json:"created_at"`
	Seq             int64           `json:"-"`
}

// CreateRequest is the payload for recording a transaction.
type CreateRequest struct {
	TransactionType TransactionType `json:"transaction_type"`
	Amount          float64         `json:"amount"`
	Description     string          `json:"description"`
	Category        string          `json:"category"`
	Reference       string          `json:"reference,omitempty"`
}

func (r *CreateRequest) Validate() error {
	if !r.TransactionType.Valid() {
		return dErrors.New(dErrors.CodeValidation, "unknown transaction type")
	}
	if r.Amount <= 0 {
		return dErrors.New(dErrors.CodeValidation, "amount must be positive")
	}
	if strings.TrimSpace(r.Description) == "" {
		return dErrors.New(dErrors.CodeValidation, "description is required")
	}
	if strings.TrimSpace(r.Category) == "" {
		return dErrors.New(dErrors.CodeValidation, "category is required")
	}
	return nil
}

// Summary is the treasury overview.
type Summary struct {
	CurrentBalance     float64 `json:"current_balance"`
	TotalIncome        float64 `json:"total_income"`
	TotalExpenses      float64 `json:"total_expenses"`
	TotalContributions float64 `json:"total_contributions"`
}
