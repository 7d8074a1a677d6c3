package warning

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"bfcms/internal/attendance"
	"bfcms/internal/member"
	"bfcms/pkg/platform/sentinel"
	"bfcms/pkg/requestcontext"
)

// absenceThreshold is the fixed policy: exactly the three most recent records,
// all absences. Fewer than three records on file never qualifies.
const absenceThreshold = 3

// suppressionDays is the inclusive rolling window: a member with a warning
// raised in the last 30 days is not warned again.
const suppressionDays = 30

// MemberDirectory is the slice of the member service the monitor reads.
type MemberDirectory interface {
	ListActive(ctx context.Context) ([]*member.Member, error)
}

// AttendanceReader supplies a member's most recent attendance records,
// newest first with a deterministic tiebreak.
type AttendanceReader interface {
	ListRecentByMember(ctx context.Context, memberID string, limit int) ([]*attendance.Record, error)
}

// Auditor records raised warnings in the audit trail. A nil auditor disables
// emission.
type Auditor interface {
	Publish(ctx context.Context, action, subject string)
}

// Monitor raises warnings for members with three consecutive absences.
type Monitor struct {
	members MemberDirectory
	records AttendanceReader
	ledger  Store
	auditor Auditor
	logger  *slog.Logger
	metrics *Metrics
}

func NewMonitor(members MemberDirectory, records AttendanceReader, ledger Store,
	auditor Auditor, logger *slog.Logger, metrics *Metrics) *Monitor {
	return &Monitor{
		members: members, records: records, ledger: ledger,
		auditor: auditor, logger: logger, metrics: metrics,
	}
}

// Sweep checks every active member and raises at most one warning each. The
// whole sweep observes one request-scoped "now", so every window check within
// a sweep uses the same cutoff. Members that disappear mid-sweep are skipped.
func (m *Monitor) Sweep(ctx context.Context) error {
	now := requestcontext.Now(ctx)
	since := now.AddDate(0, 0, -suppressionDays)

	members, err := m.members.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("listing active members: %w", err)
	}

	for _, candidate := range members {
		records, err := m.records.ListRecentByMember(ctx, candidate.ID, absenceThreshold)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				continue
			}
			return fmt.Errorf("reading attendance for member %s: %w", candidate.ID, err)
		}
		if !qualifies(records) {
			continue
		}

		w := &Warning{
			ID:                  uuid.NewString(),
			MemberID:            candidate.ID,
			MemberName:          candidate.FullName,
			MembershipNumber:    candidate.MembershipNumber,
			MemberEmail:         candidate.Email,
			ConsecutiveAbsences: absenceThreshold,
			WarningType:         TypeAttendance,
			CreatedAt:           now,
		}
		if err := m.ledger.RaiseIfNoneSince(ctx, w, since); err != nil {
			if errors.Is(err, sentinel.ErrSuppressed) {
				continue
			}
			return fmt.Errorf("raising warning for member %s: %w", candidate.ID, err)
		}
		m.metrics.ObserveRaised()
		if m.auditor != nil {
			m.auditor.Publish(ctx, "warning.raised", w.ID)
		}
		m.logger.InfoContext(ctx, "attendance warning raised",
			"warning_id", w.ID, "member_id", w.MemberID, "membership_number", w.MembershipNumber)
	}
	return nil
}

// qualifies reports whether the records meet the fixed policy: at least three
// on file and the three most recent all absences. An excused or present mark
// anywhere in the three breaks the streak.
func qualifies(records []*attendance.Record) bool {
	if len(records) < absenceThreshold {
		return false
	}
	for _, r := range records[:absenceThreshold] {
		if r.Status != attendance.StatusAbsent {
			return false
		}
	}
	return true
}
