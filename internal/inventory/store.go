package inventory

import (
	"context"
	"sort"
	"sync"

	"bfcms/pkg/platform/sentinel"
)

// Store persists inventory items.
type Store interface {
	Create(ctx context.Context, item *Item) error
	FindByID(ctx context.Context, id string) (*Item, error)
	List(ctx context.Context, filter Filter) ([]*Item, error)
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id string) error
	// CountByCategory backs item-code generation.
	CountByCategory(ctx context.Context, category string) (int, error)
	Count(ctx context.Context) (int, error)
}

// InMemoryStore is the non-persistent Store used in tests and local runs.
type InMemoryStore struct {
	mu    sync.RWMutex
	items map[string]*Item
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{items: make(map[string]*Item)}
}

func (s *InMemoryStore) Create(_ context.Context, item *Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *item
	s.items[item.ID] = &cp
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id string) (*Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *item
	return &cp, nil
}

func (s *InMemoryStore) List(_ context.Context, filter Filter) ([]*Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Item
	for _, item := range s.items {
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		if filter.Condition != "" && string(item.Condition) != filter.Condition {
			continue
		}
		cp := *item
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemoryStore) Update(_ context.Context, item *Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[item.ID]; !ok {
		return sentinel.ErrNotFound
	}
	cp := *item
	s.items[item.ID] = &cp
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *InMemoryStore) CountByCategory(_ context.Context, category string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, item := range s.items {
		if item.Category == category {
			count++
		}
	}
	return count, nil
}

func (s *InMemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items), nil
}
