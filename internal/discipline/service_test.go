package discipline

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"bfcms/internal/member"
	dErrors "bfcms/pkg/domain-errors"
	"bfcms/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	ctx     context.Context
	members *member.Service
	service *Service
}

func (s *ServiceSuite) SetupTest() {
	now := time.Date(2025, 5, 12, 9, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), now)
	s.ctx = requestcontext.WithActor(s.ctx, requestcontext.ActorInfo{UserID: "disc-1", FullName: "Committee Chair"})
	s.members = member.NewService(member.NewInMemoryStore(), nil, slog.New(slog.DiscardHandler))
	s.service = NewService(NewInMemoryStore(), s.members, slog.New(slog.DiscardHandler))
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) newMember() *member.Member {
	m, err := s.members.Create(s.ctx, member.CreateRequest{
		FullName:   "Peter Mwangi",
		IDNumber:   "12345678",
		Phone:      "+254700000000",
		Email:      "peter@example.com",
		Department: member.DepartmentBass,
	})
	s.Require().NoError(err)
	return m
}

func (s *ServiceSuite) TestCreateSnapshotsMember() {
	m := s.newMember()

	c, err := s.service.Create(s.ctx, CreateRequest{MemberID: m.ID, CaseDescription: "Missed uniform"})
	s.Require().NoError(err)
	s.Equal("Peter Mwangi", c.MemberName)
	s.Equal(m.MembershipNumber, c.MembershipNumber)
	s.Equal(StatusPending, c.Status)
	s.Equal("2025-05-12", c.DateReported)
	s.Equal("Committee Chair", c.CreatedBy)
	s.Empty(c.ClosureDate)
}

func (s *ServiceSuite) TestCreateUnknownMember() {
	_, err := s.service.Create(s.ctx, CreateRequest{MemberID: "ghost", CaseDescription: "anything"})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestResolveStampsClosureDate() {
	m := s.newMember()
	c, err := s.service.Create(s.ctx, CreateRequest{MemberID: m.ID, CaseDescription: "Missed uniform"})
	s.Require().NoError(err)

	resolved := StatusResolved
	decision := "Warning issued"
	later := requestcontext.WithTime(s.ctx, time.Date(2025, 5, 20, 14, 0, 0, 0, time.UTC))
	updated, err := s.service.Update(later, c.ID, UpdateRequest{Status: &resolved, CommitteeDecision: &decision})
	s.Require().NoError(err)
	s.Equal(StatusResolved, updated.Status)
	s.Equal("2025-05-20", updated.ClosureDate)
	s.Equal("Warning issued", updated.CommitteeDecision)
}

func (s *ServiceSuite) TestListByStatus() {
	m := s.newMember()
	first, err := s.service.Create(s.ctx, CreateRequest{MemberID: m.ID, CaseDescription: "Case one"})
	s.Require().NoError(err)
	_, err = s.service.Create(s.ctx, CreateRequest{MemberID: m.ID, CaseDescription: "Case two"})
	s.Require().NoError(err)

	resolved := StatusResolved
	_, err = s.service.Update(s.ctx, first.ID, UpdateRequest{Status: &resolved})
	s.Require().NoError(err)

	pending, err := s.service.List(s.ctx, "pending")
	s.Require().NoError(err)
	s.Len(pending, 1)
	s.Equal("Case two", pending[0].CaseDescription)
}

func (s *ServiceSuite) TestUpdateUnknownCase() {
	desc := "x"
	_, err := s.service.Update(s.ctx, "no-such-case", UpdateRequest{CaseDescription: &desc})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}
