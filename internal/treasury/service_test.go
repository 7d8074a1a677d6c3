package treasury

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	dErrors "bfcms/pkg/domain-errors"
	"bfcms/pkg/requestcontext"
)

type TreasurySuite struct {
	suite.Suite
	service *Service
	ctx     context.Context
}

func (s *TreasurySuite) SetupTest() {
	s.service = NewService(NewInMemoryStore(), slog.New(slog.DiscardHandler))
	ctx := requestcontext.WithTime(context.Background(), time.Date(2025, 8, 5, 10, 0, 0, 0, time.UTC))
	s.ctx = requestcontext.WithActor(ctx, requestcontext.ActorInfo{UserID: "tr-1", FullName: "The Treasurer"})
}

func TestTreasurySuite(t *testing.T) {
	suite.Run(t, new(TreasurySuite))
}

func (s *TreasurySuite) record(tt TransactionType, amount float64) *Transaction {
	t, err := s.service.Record(s.ctx, CreateRequest{
		TransactionType: tt,
		Amount:          amount,
		Description:     "line",
		Category:        "general",
	})
	s.Require().NoError(err)
	return t
}

func (s *TreasurySuite) TestRunningBalance() {
	s.Equal(1000.0, s.record(TypeIncome, 1000).BalanceAfter)
	s.Equal(700.0, s.record(TypeExpense, 300).BalanceAfter)
	s.Equal(950.0, s.record(TypeContribution, 250).BalanceAfter)

	balance, err := s.service.store.CurrentBalance(s.ctx)
	s.Require().NoError(err)
	s.Equal(950.0, balance)
}

func (s *TreasurySuite) TestRecordStampsActor() {
	t := s.record(TypeIncome, 50)
	s.Equal("tr-1", t.RecordedBy)
	s.Equal("The Treasurer", t.RecordedByName)
	s.Equal(time.Date(2025, 8, 5, 10, 0, 0, 0, time.UTC), t.CreatedAt)
}

func (s *TreasurySuite) TestListNewestFirstAndFiltered() {
	s.record(TypeIncome, 100)
	s.record(TypeExpense, 40)
	s.record(TypeIncome, 60)

	all, err := s.service.List(s.ctx, "")
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal(120.0, all[0].BalanceAfter)

	income, err := s.service.List(s.ctx, "income")
	s.Require().NoError(err)
	s.Require().Len(income, 2)
	for _, t := range income {
		s.Equal(TypeIncome, t.TransactionType)
	}
}

func (s *TreasurySuite) TestSummary() {
	s.record(TypeIncome, 1000)
	s.record(TypeExpense, 300)
	s.record(TypeContribution, 250)
	s.record(TypeExpense, 50)

	summary, err := s.service.Summary(s.ctx)
	s.Require().NoError(err)
	s.Equal(900.0, summary.CurrentBalance)
	s.Equal(1000.0, summary.TotalIncome)
	s.Equal(350.0, summary.TotalExpenses)
	s.Equal(250.0, summary.TotalContributions)
}

func (s *TreasurySuite) TestSummaryEmptyLedger() {
	summary, err := s.service.Summary(s.ctx)
	s.Require().NoError(err)
	s.Equal(0.0, summary.CurrentBalance)
	s.Equal(0.0, summary.TotalIncome)
}

func (s *TreasurySuite) TestRecordContributionMirrors() {
	err := s.service.RecordContribution(s.ctx, 500, "Contribution from Jane Doe - tithe", "contrib-1")
	s.Require().NoError(err)

	lines, err := s.service.List(s.ctx, "contribution")
	s.Require().NoError(err)
	s.Require().Len(lines, 1)
	s.Equal("contribution", lines[0].Category)
	s.Equal("contrib-1", lines[0].Reference)
	s.Equal(500.0, lines[0].BalanceAfter)
}

func TestCreateRequestValidate(t *testing.T) {
	cases := []struct {
		name string
		req  CreateRequest
	}{
		{"unknown type", CreateRequest{TransactionType: "transfer", Amount: 10, Description: "d", Category: "c"}},
		{"zero amount", CreateRequest{TransactionType: TypeIncome, Amount: 0, Description: "d", Category: "c"}},
		{"negative amount", CreateRequest{TransactionType: TypeIncome, Amount: -5, Description: "d", Category: "c"}},
		{"missing description", CreateRequest{TransactionType: TypeIncome, Amount: 10, Category: "c"}},
		{"missing category", CreateRequest{TransactionType: TypeIncome, Amount: 10, Description: "d"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		})
	}
}
