package inventory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	dErrors "bfcms/pkg/domain-errors"
	"bfcms/pkg/platform/sentinel"
	"bfcms/pkg/requestcontext"
)

// Service implements inventory tracking.
type Service struct {
	store  Store
	logger *slog.Logger
}

func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Create registers an item. The item code is <first three letters of the
// category, uppercased>-<per-category sequence, four digits>.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Item, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	code, err := s.nextItemCode(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	item := &Item{
		ID:                 uuid.NewString(),
		ItemCode:           code,
		Name:               req.Name,
		Category:           req.Category,
		Quantity:           req.Quantity,
		Condition:          req.Condition,
		Description:        req.Description,
		AssignedTo:         req.AssignedTo,
		AssignedDepartment: req.AssignedDepartment,
		CreatedAt:          requestcontext.Now(ctx),
		CreatedBy:          requestcontext.Actor(ctx).UserID,
	}
	if err := s.store.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("creating inventory item: %w", err)
	}
	s.logger.InfoContext(ctx, "inventory item registered", "item_id", item.ID, "item_code", item.ItemCode)
	return item, nil
}

// List returns items matching the filter.
func (s *Service) List(ctx context.Context, filter Filter) ([]*Item, error) {
	items, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing inventory: %w", err)
	}
	if items == nil {
		items = []*Item{}
	}
	return items, nil
}

// Update applies a partial update. The item code and category are immutable.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Item, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	item, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "item not found")
		}
		return nil, fmt.Errorf("finding inventory item: %w", err)
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.Condition != nil {
		item.Condition = *req.Condition
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.AssignedTo != nil {
		item.AssignedTo = *req.AssignedTo
	}
	if req.AssignedDepartment != nil {
		item.AssignedDepartment = *req.AssignedDepartment
	}

	if err := s.store.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("updating inventory item: %w", err)
	}
	return item, nil
}

// Delete removes an item.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "item not found")
		}
		return fmt.Errorf("deleting inventory item: %w", err)
	}
	return nil
}

func (s *Service) nextItemCode(ctx context.Context, category string) (string, error) {
	count, err := s.store.CountByCategory(ctx, category)
	if err != nil {
		return "", fmt.Errorf("counting items for code generation: %w", err)
	}
	prefix := strings.ToUpper(category[:3])
	return fmt.Sprintf("%s-%04d", prefix, count+1), nil
}
