package notice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	dErrors "bfcms/pkg/domain-errors"
	"bfcms/pkg/platform/sentinel"
	"bfcms/pkg/requestcontext"
)

// Service implements the notice board.
type Service struct {
	store  Store
	logger *slog.Logger
}

func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Create posts a notice. The attachment type is inferred from the file name.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Notice, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	actor := requestcontext.Actor(ctx)
	n := &Notice{
		ID:               uuid.NewString(),
		Title:            req.Title,
		Content:          req.Content,
		TargetDepartment: req.normalizedTarget(),
		ExpiryDate:       req.ExpiryDate,
		HasAttachment:    req.AttachmentData != "",
		AttachmentName:   req.AttachmentName,
		AttachmentType:   InferAttachmentType(req.AttachmentName),
		AttachmentData:   req.AttachmentData,
		CreatedBy:        actor.UserID,
		CreatedByName:    actor.FullName,
		CreatedAt:        requestcontext.Now(ctx),
	}
	if err := s.store.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("creating notice: %w", err)
	}
	s.logger.InfoContext(ctx, "notice posted", "notice_id", n.ID, "target", n.TargetDepartment)
	return redactNonImage(n), nil
}

// List returns notices visible to a department (its own plus broadcasts),
// newest first, with non-image attachment payloads stripped.
func (s *Service) List(ctx context.Context, department string) ([]*Notice, error) {
	notices, err := s.store.List(ctx, department)
	if err != nil {
		return nil, fmt.Errorf("listing notices: %w", err)
	}
	out := make([]*Notice, 0, len(notices))
	for _, n := range notices {
		out = append(out, redactNonImage(n))
	}
	return out, nil
}

// Get returns one notice with its full attachment payload.
func (s *Service) Get(ctx context.Context, id string) (*Notice, error) {
	n, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "notice not found")
		}
		return nil, fmt.Errorf("finding notice: %w", err)
	}
	return n, nil
}

// GetAttachment returns the attachment of a notice, if any.
func (s *Service) GetAttachment(ctx context.Context, id string) (*Attachment, error) {
	n, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.AttachmentData == "" {
		return nil, dErrors.New(dErrors.CodeNotFound, "no attachment found")
	}
	return &Attachment{
		FileName: n.AttachmentName,
		FileType: n.AttachmentType,
		FileData: n.AttachmentData,
	}, nil
}

// Update replaces the notice content wholesale, keeping authorship.
func (s *Service) Update(ctx context.Context, id string, req CreateRequest) (*Notice, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	n, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	now := requestcontext.Now(ctx)
	n.Title = req.Title
	n.Content = req.Content
	n.TargetDepartment = req.normalizedTarget()
	n.ExpiryDate = req.ExpiryDate
	n.HasAttachment = req.AttachmentData != ""
	n.AttachmentName = req.AttachmentName
	n.AttachmentType = InferAttachmentType(req.AttachmentName)
	n.AttachmentData = req.AttachmentData
	n.UpdatedAt = &now

	if err := s.store.Update(ctx, n); err != nil {
		return nil, fmt.Errorf("updating notice: %w", err)
	}
	return redactNonImage(n), nil
}

// Delete removes a notice.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "notice not found")
		}
		return fmt.Errorf("deleting notice: %w", err)
	}
	return nil
}

// redactNonImage drops the attachment payload unless it is an inline-viewable
// image; the data stays retrievable through GetAttachment.
func redactNonImage(n *Notice) *Notice {
	if n.AttachmentType == AttachmentImage {
		return n
	}
	cp := *n
	cp.AttachmentData = ""
	return &cp
}
