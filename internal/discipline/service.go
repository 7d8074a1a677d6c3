package discipline

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

// MemberDirectory resolves the member a case is opened against.
type MemberDirectory interface {
	Get(ctx context.Context, id string) (*member.Member, error)
}

// Service implements disciplinary case management.
type Service struct {
	store   Store
	members MemberDirectory
	logger  *slog.Logger
}

func NewService(store Store, members MemberDirectory, logger *slog.Logger) *Service {
	return &Service{store: store, members: members, logger: logger}
}

// Create opens a case, snapshotting the member's name and number.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Case, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	m, err := s.members.Get(ctx, req.MemberID)
	if err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	c := &Case{
		ID:               uuid.NewString(),
		MemberID:         req.MemberID,
		MemberName:       m.FullName,
		MembershipNumber: m.MembershipNumber,
		CaseDescription:  req.CaseDescription,
		DateReported:     now.Format("2006-01-02"),
		Status:           StatusPending,
		CreatedBy:        requestcontext.Actor(ctx).FullName,
		CreatedAt:        now,
	}
	if err := s.store.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("creating disciplinary case: %w", err)
	}
	s.logger.InfoContext(ctx, "disciplinary case opened", "case_id", c.ID, "member_id", c.MemberID)
	return c, nil
}

// List returns cases, optionally filtered by status.
func (s *Service) List(ctx context.Context, status string) ([]*Case, error) {
	cases, err := s.store.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("listing disciplinary cases: %w", err)
	}
	if cases == nil {
		cases = []*Case{}
	}
	return cases, nil
}

// Update applies a partial update. Moving a case to resolved stamps the
// closure date with the request date.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Case, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "case not found")
		}
		return nil, fmt.Errorf("finding disciplinary case: %w", err)
	}

	if req.CaseDescription != nil {
		c.CaseDescription = *req.CaseDescription
	}
	if req.CommitteeDecision != nil {
		c.CommitteeDecision = *req.CommitteeDecision
	}
	if req.Sanctions != nil {
		c.Sanctions = *req.Sanctions
	}
	if req.Status != nil {
		c.Status = *req.Status
		if c.Status == StatusResolved {
			c.ClosureDate = requestcontext.Now(ctx).Format("2006-01-02")
		}
	}

	if err := s.store.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("updating disciplinary case: %w", err)
	}
	return c, nil
}
