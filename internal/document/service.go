package document

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

// Service implements office document filing.
type Service struct {
	store  Store
	logger *slog.Logger
}

func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Upload files a document.
func (s *Service) Upload(ctx context.Context, req UploadRequest) (*Document, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	actor := requestcontext.Actor(ctx)
	d := &Document{
		ID:             uuid.NewString(),
		Title:          req.Title,
		Office:         req.Office,
		Category:       req.Category,
		FileName:       req.FileName,
		FileData:       req.FileData,
		UploadedBy:     actor.UserID,
		UploadedByName: actor.FullName,
		CreatedAt:      requestcontext.Now(ctx),
	}
	if err := s.store.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("filing document: %w", err)
	}
	s.logger.InfoContext(ctx, "document filed", "document_id", d.ID, "office", d.Office)
	return d, nil
}

// List returns documents matching the filter, newest first, without payloads.
func (s *Service) List(ctx context.Context, filter Filter) ([]*Document, error) {
	docs, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	if docs == nil {
		docs = []*Document{}
	}
	return docs, nil
}

// Download returns the file payload for a document.
func (s *Service) Download(ctx context.Context, id string) (*DownloadPayload, error) {
	d, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "document not found")
		}
		return nil, fmt.Errorf("finding document: %w", err)
	}
	return &DownloadPayload{FileName: d.FileName, FileData: d.FileData}, nil
}

// Delete removes a document.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "document not found")
		}
		return fmt.Errorf("deleting document: %w", err)
	}
	return nil
}
