package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"bfcms/internal/member"
	dErrors "bfcms/pkg/domain-errors"
	"bfcms/pkg/platform/sentinel"
	"bfcms/pkg/requestcontext"
)

// MemberDirectory is the slice of the member service marking needs: snapshot
// reads for name and membership number.
type MemberDirectory interface {
	Get(ctx context.Context, id string) (*member.Member, error)
}

// Sweeper runs the consecutive-absence check over all active members. It is
// injected by the composition root so this package stays independent of the
// warning ledger.
type Sweeper func(ctx context.Context) error

// Service implements attendance taking.
type Service struct {
	store   Store
	members MemberDirectory
	sweep   Sweeper
	logger  *slog.Logger
}

func NewService(store Store, members MemberDirectory, sweep Sweeper, logger *slog.Logger) *Service {
	return &Service{store: store, members: members, sweep: sweep, logger: logger}
}

// CreateEvent registers a gathering to take attendance for.
func (s *Service) CreateEvent(ctx context.Context, req EventCreateRequest) (*Event, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	e := &Event{
		ID:        uuid.NewString(),
		EventName: req.EventName,
		EventDate: req.EventDate,
		EventType: req.EventType,
		CreatedBy: requestcontext.Actor(ctx).FullName,
		CreatedAt: requestcontext.Now(ctx),
	}
	if err := s.store.CreateEvent(ctx, e); err != nil {
		return nil, fmt.Errorf("creating attendance event: %w", err)
	}
	return e, nil
}

// ListEvents returns events newest first, optionally filtered by type.
func (s *Service) ListEvents(ctx context.Context, eventType string) ([]*Event, error) {
	events, err := s.store.ListEvents(ctx, eventType)
	if err != nil {
		return nil, fmt.Errorf("listing attendance events: %w", err)
	}
	if events == nil {
		events = []*Event{}
	}
	return events, nil
}

// Mark applies a batch of attendance marks. Each mark upserts the single
// record for its (event, member) pair; marks for unknown members are skipped
// silently. After the batch, event totals are recomputed for every touched
// event and the consecutive-absence sweep runs once.
func (s *Service) Mark(ctx context.Context, marks []Mark) ([]MarkOutcome, error) {
	now := requestcontext.Now(ctx)
	markedBy := requestcontext.Actor(ctx).FullName

	outcomes := make([]MarkOutcome, 0, len(marks))
	touchedEvents := make(map[string]struct{})
	for _, mark := range marks {
		if !mark.Status.Valid() {
			return nil, dErrors.Newf(dErrors.CodeValidation, "unknown attendance status %q", mark.Status)
		}
		m, err := s.members.Get(ctx, mark.MemberID)
		if err != nil {
			if dErrors.HasCode(err, dErrors.CodeNotFound) {
				continue
			}
			return nil, fmt.Errorf("resolving member %s: %w", mark.MemberID, err)
		}

		record := &Record{
			ID:               uuid.NewString(),
			EventID:          mark.EventID,
			MemberID:         mark.MemberID,
			MemberName:       m.FullName,
			MembershipNumber: m.MembershipNumber,
			Status:           mark.Status,
			MarkedBy:         markedBy,
			CreatedAt:        now,
		}
		if err := s.store.Upsert(ctx, record); err != nil {
			return nil, fmt.Errorf("marking attendance: %w", err)
		}
		touchedEvents[mark.EventID] = struct{}{}
		outcomes = append(outcomes, MarkOutcome{MemberID: mark.MemberID, Status: mark.Status})
	}

	for eventID := range touchedEvents {
		if err := s.refreshEventTotals(ctx, eventID); err != nil {
			return nil, err
		}
	}

	if len(outcomes) > 0 && s.sweep != nil {
		if err := s.sweep(ctx); err != nil {
			return nil, fmt.Errorf("running absence sweep: %w", err)
		}
	}
	return outcomes, nil
}

// EventRecords lists the records taken at one event, in marking order.
func (s *Service) EventRecords(ctx context.Context, eventID string) ([]*Record, error) {
	if _, err := s.store.FindEvent(ctx, eventID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "attendance event not found")
		}
		return nil, fmt.Errorf("finding attendance event: %w", err)
	}
	records, err := s.store.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("listing event records: %w", err)
	}
	if records == nil {
		records = []*Record{}
	}
	return records, nil
}

// MemberSummary aggregates a member's history, newest record first.
func (s *Service) MemberSummary(ctx context.Context, memberID string) (*MemberSummary, error) {
	records, err := s.store.ListByMember(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("listing member records: %w", err)
	}

	summary := &MemberSummary{MemberID: memberID, Records: records}
	if summary.Records == nil {
		summary.Records = []*Record{}
	}
	for _, r := range records {
		summary.TotalEvents++
		switch r.Status {
		case StatusPresent:
			summary.Present++
		case StatusAbsent:
			summary.Absent++
		case StatusExcused:
			summary.Excused++
		}
	}
	if summary.TotalEvents > 0 {
		summary.AttendanceRate = float64(summary.Present) / float64(summary.TotalEvents) * 100
	}
	return summary, nil
}

func (s *Service) refreshEventTotals(ctx context.Context, eventID string) error {
	present, err := s.store.CountEventStatus(ctx, eventID, StatusPresent)
	if err != nil {
		return fmt.Errorf("counting present records: %w", err)
	}
	absent, err := s.store.CountEventStatus(ctx, eventID, StatusAbsent)
	if err != nil {
		return fmt.Errorf("counting absent records: %w", err)
	}
	if err := s.store.SetEventTotals(ctx, eventID, present, absent); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			// Marks against a deleted or never-created event still count for
			// the member's history; there is just no event row to annotate.
			s.logger.WarnContext(ctx, "attendance totals for unknown event", "event_id", eventID)
			return nil
		}
		return fmt.Errorf("updating event totals: %w", err)
	}
	return nil
}
