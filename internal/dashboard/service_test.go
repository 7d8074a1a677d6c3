package dashboard

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"bfcms/internal/contribution"
	"bfcms/internal/discipline"
	"bfcms/internal/document"
	"bfcms/internal/inventory"
	"bfcms/internal/member"
	"bfcms/internal/notice"
	"bfcms/internal/treasury"
	"bfcms/internal/warning"
	"bfcms/pkg/requestcontext"
)

type StatsSuite struct {
	suite.Suite
	ctx      context.Context
	members  *member.InMemoryStore
	cases    *discipline.InMemoryStore
	treasury *treasury.InMemoryStore
	warnings *warning.InMemoryStore
	service  *Service
}

func (s *StatsSuite) SetupTest() {
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2025, 8, 5, 10, 0, 0, 0, time.UTC))
	s.members = member.NewInMemoryStore()
	s.cases = discipline.NewInMemoryStore()
	s.treasury = treasury.NewInMemoryStore()
	s.warnings = warning.NewInMemoryStore()
	s.service = NewService(
		s.members,
		s.cases,
		inventory.NewInMemoryStore(),
		notice.NewInMemoryStore(),
		document.NewInMemoryStore(),
		contribution.NewInMemoryStore(),
		s.treasury,
		s.warnings,
		nil,
		slog.New(slog.DiscardHandler),
	)
}

func TestStatsSuite(t *testing.T) {
	suite.Run(t, new(StatsSuite))
}

func (s *StatsSuite) addMember(dept member.Department, status member.Status) {
	err := s.members.Create(s.ctx, &member.Member{
		ID:         uuid.NewString(),
		FullName:   "Someone",
		Department: dept,
		Status:     status,
	})
	s.Require().NoError(err)
}

func (s *StatsSuite) TestEmptySystem() {
	stats, err := s.service.Stats(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, stats.TotalMembers)
	s.Equal(0.0, stats.TreasuryBalance)
	s.Require().Len(stats.Departments, len(member.Departments))
	for _, count := range stats.Departments {
		s.Equal(0, count)
	}
}

func (s *StatsSuite) TestAggregates() {
	s.addMember(member.DepartmentSoprano, member.StatusActive)
	s.addMember(member.DepartmentSoprano, member.StatusActive)
	s.addMember(member.DepartmentBass, member.StatusSuspended)

	err := s.cases.Create(s.ctx, &discipline.Case{ID: "c1", Status: discipline.StatusPending})
	s.Require().NoError(err)
	err = s.cases.Create(s.ctx, &discipline.Case{ID: "c2", Status: discipline.StatusResolved})
	s.Require().NoError(err)

	err = s.treasury.Append(s.ctx, &treasury.Transaction{ID: "t1", TransactionType: treasury.TypeIncome, Amount: 750}, 750)
	s.Require().NoError(err)

	since := time.Date(2025, 7, 6, 0, 0, 0, 0, time.UTC)
	err = s.warnings.RaiseIfNoneSince(s.ctx, &warning.Warning{
		ID: "w1", MemberID: "m1", WarningType: warning.TypeAttendance,
		CreatedAt: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
	}, since)
	s.Require().NoError(err)

	stats, err := s.service.Stats(s.ctx)
	s.Require().NoError(err)
	s.Equal(3, stats.TotalMembers)
	s.Equal(2, stats.ActiveMembers)
	s.Equal(1, stats.PendingCases)
	s.Equal(750.0, stats.TreasuryBalance)
	s.Equal(1, stats.PendingWarnings)
	s.Equal(2, stats.Departments[string(member.DepartmentSoprano)])
	s.Equal(0, stats.Departments[string(member.DepartmentBass)])
}
