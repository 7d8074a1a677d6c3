package discipline

import (
	"context"
	"sort"
	"sync"

	"bfcms/pkg/platform/sentinel"
)

// Store persists disciplinary cases.
type Store interface {
	Create(ctx context.Context, c *Case) error
	FindByID(ctx context.Context, id string) (*Case, error)
	List(ctx context.Context, status string) ([]*Case, error)
	Update(ctx context.Context, c *Case) error
	CountByStatus(ctx context.Context, status CaseStatus) (int, error)
}

// InMemoryStore is the non-persistent Store used in tests and local runs.
type InMemoryStore struct {
	mu    sync.RWMutex
	cases map[string]*Case
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{cases: make(map[string]*Case)}
}

func (s *InMemoryStore) Create(_ context.Context, c *Case) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *c
	s.cases[c.ID] = &cp
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id string) (*Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cases[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *InMemoryStore) List(_ context.Context, status string) ([]*Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Case
	for _, c := range s.cases {
		if status != "" && string(c.Status) != status {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemoryStore) Update(_ context.Context, c *Case) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cases[c.ID]; !ok {
		return sentinel.ErrNotFound
	}
	cp := *c
	s.cases[c.ID] = &cp
	return nil
}

func (s *InMemoryStore) CountByStatus(_ context.Context, status CaseStatus) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, c := range s.cases {
		if c.Status == status {
			count++
		}
	}
	return count, nil
}
