package contribution

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"bfcms/internal/member"
	"bfcms/pkg/requestcontext"
)

// MemberDirectory resolves the member a contribution is recorded for.
type MemberDirectory interface {
	Get(ctx context.Context, id string) (*member.Member, error)
}

// TreasuryRecorder mirrors contributions into the treasury ledger.
type TreasuryRecorder interface {
	RecordContribution(ctx context.Context, amount float64, description, reference string) error
}

// Service implements contribution recording and reporting.
type Service struct {
	store    Store
	members  MemberDirectory
	treasury TreasuryRecorder
	logger   *slog.Logger
}

func NewService(store Store, members MemberDirectory, treasury TreasuryRecorder, logger *slog.Logger) *Service {
	return &Service{store: store, members: members, treasury: treasury, logger: logger}
}

// Record stores a contribution and mirrors it into the treasury ledger,
// referencing the contribution ID.
func (s *Service) Record(ctx context.Context, req CreateRequest) (*Contribution, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	m, err := s.members.Get(ctx, req.MemberID)
	if err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	date := req.Date
	if date == "" {
		date = now.Format("2006-01-02")
	}
	c := &Contribution{
		ID:               uuid.NewString(),
		MemberID:         req.MemberID,
		MemberName:       m.FullName,
		MembershipNumber: m.MembershipNumber,
		Amount:           req.Amount,
		ContributionType: req.ContributionType,
		Description:      req.Description,
		Date:             date,
		RecordedBy:       requestcontext.Actor(ctx).FullName,
		CreatedAt:        now,
	}
	if err := s.store.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("creating contribution: %w", err)
	}

	mirror := fmt.Sprintf("Contribution from %s - %s", m.FullName, req.ContributionType)
	if err := s.treasury.RecordContribution(ctx, req.Amount, mirror, c.ID); err != nil {
		return nil, fmt.Errorf("mirroring contribution into treasury: %w", err)
	}
	s.logger.InfoContext(ctx, "contribution recorded",
		"contribution_id", c.ID, "member_id", c.MemberID, "amount", c.Amount)
	return c, nil
}

// List returns contributions newest first, narrowed by the filter.
func (s *Service) List(ctx context.Context, f Filter) ([]*Contribution, error) {
	contributions, err := s.store.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("listing contributions: %w", err)
	}
	if contributions == nil {
		contributions = []*Contribution{}
	}
	return contributions, nil
}

// Summary reports totals per type and the top ten contributors.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	byType, err := s.store.TotalsByType(ctx)
	if err != nil {
		return nil, fmt.Errorf("summing contributions: %w", err)
	}
	top, err := s.store.TopContributors(ctx, 10)
	if err != nil {
		return nil, fmt.Errorf("ranking contributors: %w", err)
	}
	summary := &Summary{ByType: byType, TopContributors: top}
	if summary.ByType == nil {
		summary.ByType = []TypeTotal{}
	}
	if summary.TopContributors == nil {
		summary.TopContributors = []Contributor{}
	}
	for _, t := range byType {
		summary.TotalContributions += t.Total
	}
	return summary, nil
}
