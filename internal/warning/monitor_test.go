package warning

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"bfcms/internal/attendance"
	"bfcms/internal/member"
	"bfcms/pkg/requestcontext"
)

type MonitorSuite struct {
	suite.Suite
	ctx        context.Context
	now        time.Time
	members    *member.Service
	attendance *attendance.InMemoryStore
	ledger     *InMemoryStore
	monitor    *Monitor
}

func (s *MonitorSuite) SetupTest() {
	s.now = time.Date(2025, 7, 20, 18, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
	s.members = member.NewService(member.NewInMemoryStore(), nil, slog.New(slog.DiscardHandler))
	s.attendance = attendance.NewInMemoryStore()
	s.ledger = NewInMemoryStore()
	s.monitor = NewMonitor(s.members, s.attendance, s.ledger, nil,
		slog.New(slog.DiscardHandler), NewMetrics(prometheus.NewRegistry()))
}

func TestMonitorSuite(t *testing.T) {
	suite.Run(t, new(MonitorSuite))
}

func (s *MonitorSuite) newMember(name, email string) *member.Member {
	m, err := s.members.Create(s.ctx, member.CreateRequest{
		FullName:   name,
		IDNumber:   "12345678",
		Phone:      "+254700000000",
		Email:      email,
		Department: member.DepartmentTenor,
	})
	s.Require().NoError(err)
	return m
}

// record appends an attendance record for the member, offset hours before now.
func (s *MonitorSuite) record(m *member.Member, status attendance.RecordStatus, hoursAgo int) {
	err := s.attendance.Upsert(s.ctx, &attendance.Record{
		ID:               uuid.NewString(),
		EventID:          uuid.NewString(),
		MemberID:         m.ID,
		MemberName:       m.FullName,
		MembershipNumber: m.MembershipNumber,
		Status:           status,
		MarkedBy:         "The Secretary",
		CreatedAt:        s.now.Add(-time.Duration(hoursAgo) * time.Hour),
	})
	s.Require().NoError(err)
}

func (s *MonitorSuite) sweep() []*Warning {
	s.Require().NoError(s.monitor.Sweep(s.ctx))
	warnings, err := s.ledger.List(s.ctx)
	s.Require().NoError(err)
	return warnings
}

func (s *MonitorSuite) TestFewerThanThreeRecordsNeverWarns() {
	m := s.newMember("Grace Achieng", "grace@example.com")
	s.record(m, attendance.StatusAbsent, 2)
	s.record(m, attendance.StatusAbsent, 1)

	s.Empty(s.sweep())
}

func (s *MonitorSuite) TestThreeConsecutiveAbsencesRaiseOneWarning() {
	m := s.newMember("Grace Achieng", "grace@example.com")
	s.record(m, attendance.StatusAbsent, 3)
	s.record(m, attendance.StatusAbsent, 2)
	s.record(m, attendance.StatusAbsent, 1)

	warnings := s.sweep()
	s.Require().Len(warnings, 1)

	w := warnings[0]
	s.Equal(m.ID, w.MemberID)
	s.Equal("Grace Achieng", w.MemberName)
	s.Equal(m.MembershipNumber, w.MembershipNumber)
	s.Equal("grace@example.com", w.MemberEmail)
	s.Equal(3, w.ConsecutiveAbsences)
	s.Equal(TypeAttendance, w.WarningType)
	s.False(w.LetterGenerated)
	s.False(w.EmailSent)
	s.Equal(s.now, w.CreatedAt)
}

func (s *MonitorSuite) TestPresenceInBetweenBreaksStreak() {
	m := s.newMember("Grace Achieng", "grace@example.com")
	s.record(m, attendance.StatusAbsent, 3)
	s.record(m, attendance.StatusPresent, 2)
	s.record(m, attendance.StatusAbsent, 1)

	s.Empty(s.sweep())
}

func (s *MonitorSuite) TestExcusedBreaksStreak() {
	m := s.newMember("Grace Achieng", "grace@example.com")
	s.record(m, attendance.StatusAbsent, 3)
	s.record(m, attendance.StatusAbsent, 2)
	s.record(m, attendance.StatusExcused, 1)

	s.Empty(s.sweep())
}

func (s *MonitorSuite) TestOnlyThreeMostRecentRecordsCount() {
	m := s.newMember("Grace Achieng", "grace@example.com")
	// Old absences followed by a present mark in the latest three.
	s.record(m, attendance.StatusAbsent, 4)
	s.record(m, attendance.StatusAbsent, 3)
	s.record(m, attendance.StatusAbsent, 2)
	s.record(m, attendance.StatusPresent, 1)

	s.Empty(s.sweep())
}

func (s *MonitorSuite) TestSecondSweepWithinWindowIsSuppressed() {
	m := s.newMember("Grace Achieng", "grace@example.com")
	s.record(m, attendance.StatusAbsent, 3)
	s.record(m, attendance.StatusAbsent, 2)
	s.record(m, attendance.StatusAbsent, 1)

	s.Require().Len(s.sweep(), 1)
	s.Len(s.sweep(), 1)
}

func (s *MonitorSuite) TestWarningExactlyThirtyDaysOldStillSuppresses() {
	m := s.newMember("Grace Achieng", "grace@example.com")
	s.record(m, attendance.StatusAbsent, 3)
	s.record(m, attendance.StatusAbsent, 2)
	s.record(m, attendance.StatusAbsent, 1)

	earlier := requestcontext.WithTime(context.Background(), s.now.AddDate(0, 0, -30))
	s.Require().NoError(s.monitor.Sweep(earlier))

	// The window is inclusive: a warning raised exactly 30 days ago counts.
	warnings := s.sweep()
	s.Len(warnings, 1)
}

func (s *MonitorSuite) TestWarningOlderThanWindowAllowsNewWarning() {
	m := s.newMember("Grace Achieng", "grace@example.com")
	s.record(m, attendance.StatusAbsent, 3)
	s.record(m, attendance.StatusAbsent, 2)
	s.record(m, attendance.StatusAbsent, 1)

	earlier := requestcontext.WithTime(context.Background(), s.now.AddDate(0, 0, -31))
	s.Require().NoError(s.monitor.Sweep(earlier))

	warnings := s.sweep()
	s.Require().Len(warnings, 2)
	s.Equal(m.ID, warnings[0].MemberID)
	s.Equal(m.ID, warnings[1].MemberID)
}

func (s *MonitorSuite) TestSuspendedMembersAreNotSwept() {
	m := s.newMember("Grace Achieng", "grace@example.com")
	s.record(m, attendance.StatusAbsent, 3)
	s.record(m, attendance.StatusAbsent, 2)
	s.record(m, attendance.StatusAbsent, 1)

	suspended := member.StatusSuspended
	_, err := s.members.Update(s.ctx, m.ID, member.UpdateRequest{Status: &suspended})
	s.Require().NoError(err)

	s.Empty(s.sweep())
}

func (s *MonitorSuite) TestSnapshotSurvivesMemberEdits() {
	m := s.newMember("Grace Achieng", "grace@example.com")
	s.record(m, attendance.StatusAbsent, 3)
	s.record(m, attendance.StatusAbsent, 2)
	s.record(m, attendance.StatusAbsent, 1)
	s.Require().Len(s.sweep(), 1)

	newName := "Grace A. Otieno"
	newEmail := "grace.otieno@example.com"
	_, err := s.members.Update(s.ctx, m.ID, member.UpdateRequest{FullName: &newName, Email: &newEmail})
	s.Require().NoError(err)

	warnings, err := s.ledger.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(warnings, 1)
	s.Equal("Grace Achieng", warnings[0].MemberName)
	s.Equal("grace@example.com", warnings[0].MemberEmail)
}

func (s *MonitorSuite) TestSweepCoversAllActiveMembers() {
	chronic := s.newMember("Grace Achieng", "grace@example.com")
	faithful := s.newMember("Peter Mwangi", "peter@example.com")
	for hoursAgo := 3; hoursAgo >= 1; hoursAgo-- {
		s.record(chronic, attendance.StatusAbsent, hoursAgo)
		s.record(faithful, attendance.StatusPresent, hoursAgo)
	}

	warnings := s.sweep()
	s.Require().Len(warnings, 1)
	s.Equal(chronic.ID, warnings[0].MemberID)
}
