package contribution

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"bfcms/internal/member"
	"bfcms/internal/treasury"
	dErrors "bfcms/pkg/domain-errors"
	"bfcms/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	ctx      context.Context
	members  *member.Service
	treasury *treasury.Service
	service  *Service
}

func (s *ServiceSuite) SetupTest() {
	now := time.Date(2025, 8, 5, 10, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), now)
	s.ctx = requestcontext.WithActor(s.ctx, requestcontext.ActorInfo{UserID: "tr-1", FullName: "The Treasurer"})
	logger := slog.New(slog.DiscardHandler)
	s.members = member.NewService(member.NewInMemoryStore(), nil, logger)
	s.treasury = treasury.NewService(treasury.NewInMemoryStore(), logger)
	s.service = NewService(NewInMemoryStore(), s.members, s.treasury, logger)
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) newMember(name, email string) *member.Member {
	m, err := s.members.Create(s.ctx, member.CreateRequest{
		FullName:   name,
		IDNumber:   "12345678",
		Phone:      "+254700000000",
		Email:      email,
		Department: member.DepartmentAlto,
	})
	s.Require().NoError(err)
	return m
}

func (s *ServiceSuite) TestRecordSnapshotsMemberAndMirrors() {
	m := s.newMember("Grace Wanjiru", "grace@example.com")

	c, err := s.service.Record(s.ctx, CreateRequest{
		MemberID:         m.ID,
		Amount:           500,
		ContributionType: "tithe",
	})
	s.Require().NoError(err)
	s.Equal("Grace Wanjiru", c.MemberName)
	s.Equal(m.MembershipNumber, c.MembershipNumber)
	s.Equal("2025-08-05", c.Date)
	s.Equal("The Treasurer", c.RecordedBy)

	lines, err := s.treasury.List(s.ctx, "contribution")
	s.Require().NoError(err)
	s.Require().Len(lines, 1)
	s.Equal("Contribution from Grace Wanjiru - tithe", lines[0].Description)
	s.Equal("contribution", lines[0].Category)
	s.Equal(c.ID, lines[0].Reference)
	s.Equal(500.0, lines[0].BalanceAfter)
}

func (s *ServiceSuite) TestRecordExplicitDate() {
	m := s.newMember("Grace Wanjiru", "grace@example.com")
	c, err := s.service.Record(s.ctx, CreateRequest{
		MemberID:         m.ID,
		Amount:           200,
		ContributionType: "offering",
		Date:             "2025-07-20",
	})
	s.Require().NoError(err)
	s.Equal("2025-07-20", c.Date)
}

func (s *ServiceSuite) TestRecordUnknownMember() {
	_, err := s.service.Record(s.ctx, CreateRequest{MemberID: "ghost", Amount: 100, ContributionType: "tithe"})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	count, err := s.treasury.List(s.ctx, "")
	s.Require().NoError(err)
	s.Empty(count)
}

func (s *ServiceSuite) TestRecordValidation() {
	m := s.newMember("Grace Wanjiru", "grace@example.com")
	cases := []CreateRequest{
		{Amount: 100, ContributionType: "tithe"},
		{MemberID: m.ID, Amount: 0, ContributionType: "tithe"},
		{MemberID: m.ID, Amount: 100},
		{MemberID: m.ID, Amount: 100, ContributionType: "tithe", Date: "20-07-2025"},
	}
	for _, req := range cases {
		_, err := s.service.Record(s.ctx, req)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	}
}

func (s *ServiceSuite) TestListFilters() {
	grace := s.newMember("Grace Wanjiru", "grace@example.com")
	peter := s.newMember("Peter Mwangi", "peter@example.com")

	_, err := s.service.Record(s.ctx, CreateRequest{MemberID: grace.ID, Amount: 500, ContributionType: "tithe"})
	s.Require().NoError(err)
	_, err = s.service.Record(s.ctx, CreateRequest{MemberID: grace.ID, Amount: 100, ContributionType: "offering"})
	s.Require().NoError(err)
	_, err = s.service.Record(s.ctx, CreateRequest{MemberID: peter.ID, Amount: 300, ContributionType: "tithe"})
	s.Require().NoError(err)

	byMember, err := s.service.List(s.ctx, Filter{MemberID: grace.ID})
	s.Require().NoError(err)
	s.Len(byMember, 2)

	byType, err := s.service.List(s.ctx, Filter{ContributionType: "tithe"})
	s.Require().NoError(err)
	s.Len(byType, 2)

	all, err := s.service.List(s.ctx, Filter{})
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal("Peter Mwangi", all[0].MemberName)
}

func (s *ServiceSuite) TestSummary() {
	grace := s.newMember("Grace Wanjiru", "grace@example.com")
	peter := s.newMember("Peter Mwangi", "peter@example.com")

	_, err := s.service.Record(s.ctx, CreateRequest{MemberID: grace.ID, Amount: 500, ContributionType: "tithe"})
	s.Require().NoError(err)
	_, err = s.service.Record(s.ctx, CreateRequest{MemberID: grace.ID, Amount: 100, ContributionType: "offering"})
	s.Require().NoError(err)
	_, err = s.service.Record(s.ctx, CreateRequest{MemberID: peter.ID, Amount: 300, ContributionType: "tithe"})
	s.Require().NoError(err)

	summary, err := s.service.Summary(s.ctx)
	s.Require().NoError(err)
	s.Equal(900.0, summary.TotalContributions)
	s.Require().Len(summary.ByType, 2)
	s.Equal("tithe", summary.ByType[0].ContributionType)
	s.Equal(800.0, summary.ByType[0].Total)
	s.Equal(2, summary.ByType[0].Count)
	s.Require().Len(summary.TopContributors, 2)
	s.Equal("Grace Wanjiru", summary.TopContributors[0].MemberName)
	s.Equal(600.0, summary.TopContributors[0].Total)
}

func (s *ServiceSuite) TestSummaryEmpty() {
	summary, err := s.service.Summary(s.ctx)
	s.Require().NoError(err)
	s.Equal(0.0, summary.TotalContributions)
	s.Empty(summary.ByType)
	s.Empty(summary.TopContributors)
}
