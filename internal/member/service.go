package member

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	dErrors "bfcms/pkg/domain-errors"
	"bfcms/pkg/platform/sentinel"
	"bfcms/pkg/requestcontext"
)

// Auditor records privileged directory actions. A nil auditor disables
// emission.
type Auditor interface {
	Publish(ctx context.Context, action, subject string)
}

// Service implements the member directory.
type Service struct {
	store   Store
	auditor Auditor
	logger  *slog.Logger
}

func NewService(store Store, auditor Auditor, logger *slog.Logger) *Service {
	return &Service{store: store, auditor: auditor, logger: logger}
}

// Create registers a member. The membership number is BFC-<year>-<seq>, where
// seq is the count of members who joined in the current year plus one, padded
// to four digits.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Member, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	dateJoined := now.Truncate(24 * time.Hour)
	if req.DateJoined != "" {
		dateJoined, _ = time.Parse("2006-01-02", req.DateJoined)
	}

	number, err := s.nextMembershipNumber(ctx, now.Year())
	if err != nil {
		return nil, err
	}

	m := &Member{
		ID:               uuid.NewString(),
		MembershipNumber: number,
		FullName:         req.FullName,
		IDNumber:         req.IDNumber,
		Phone:            req.Phone,
		Email:            req.Email,
		Department:       req.Department,
		DateJoined:       dateJoined,
		Status:           StatusActive,
		Photo:            req.Photo,
		CreatedAt:        now,
		CreatedBy:        requestcontext.Actor(ctx).UserID,
	}
	if err := s.store.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("creating member: %w", err)
	}
	s.logger.InfoContext(ctx, "member registered",
		"member_id", m.ID, "membership_number", m.MembershipNumber)
	return m, nil
}

// Get returns a single member.
func (s *Service) Get(ctx context.Context, id string) (*Member, error) {
	m, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "member not found")
		}
		return nil, fmt.Errorf("finding member: %w", err)
	}
	return m, nil
}

// List returns members matching the filter, oldest first.
func (s *Service) List(ctx context.Context, filter Filter) ([]*Member, error) {
	members, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	if members == nil {
		members = []*Member{}
	}
	return members, nil
}

// Update applies a partial update. The membership number, join date and
// creation fields are immutable.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Member, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.FullName != nil {
		m.FullName = *req.FullName
	}
	if req.IDNumber != nil {
		m.IDNumber = *req.IDNumber
	}
	if req.Phone != nil {
		m.Phone = *req.Phone
	}
	if req.Email != nil {
		m.Email = *req.Email
	}
	if req.Department != nil {
		m.Department = *req.Department
	}
	if req.Status != nil {
		m.Status = *req.Status
	}
	if req.Photo != nil {
		m.Photo = *req.Photo
	}

	if err := s.store.Update(ctx, m); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "member not found")
		}
		return nil, fmt.Errorf("updating member: %w", err)
	}
	return m, nil
}

// Delete removes a member record permanently. Warnings already raised for the
// member keep their snapshots and are unaffected.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "member not found")
		}
		return fmt.Errorf("deleting member: %w", err)
	}
	if s.auditor != nil {
		s.auditor.Publish(ctx, "member.deleted", id)
	}
	s.logger.InfoContext(ctx, "member deleted", "member_id", id,
		"deleted_by", requestcontext.Actor(ctx).UserID)
	return nil
}

// ListActive serves the absence sweep.
func (s *Service) ListActive(ctx context.Context) ([]*Member, error) {
	members, err := s.store.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing active members: %w", err)
	}
	return members, nil
}

func (s *Service) nextMembershipNumber(ctx context.Context, year int) (string, error) {
	count, err := s.store.CountJoinedInYear(ctx, year)
	if err != nil {
		return "", fmt.Errorf("counting members for number generation: %w", err)
	}
	return fmt.Sprintf("BFC-%d-%04d", year, count+1), nil
}
