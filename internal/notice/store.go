package notice

import (
	"context"
	"sort"
	"sync"

	"bfcms/pkg/platform/sentinel"
)

// Store persists notices.
type Store interface {
	Create(ctx context.Context, n *Notice) error
	FindByID(ctx context.Context, id string) (*Notice, error)
	// List returns notices newest first. A non-empty department returns that
	// department's notices plus broadcasts.
	List(ctx context.Context, department string) ([]*Notice, error)
	Update(ctx context.Context, n *Notice) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// InMemoryStore is the non-persistent Store used in tests and local runs.
type InMemoryStore struct {
	mu      sync.RWMutex
	notices map[string]*Notice
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{notices: make(map[string]*Notice)}
}

func (s *InMemoryStore) Create(_ context.Context, n *Notice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *n
	s.notices[n.ID] = &cp
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id string) (*Notice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.notices[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *n
	return &cp, nil
}

func (s *InMemoryStore) List(_ context.Context, department string) ([]*Notice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Notice
	for _, n := range s.notices {
		if department != "" && n.TargetDepartment != "" && n.TargetDepartment != department {
			continue
		}
		cp := *n
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemoryStore) Update(_ context.Context, n *Notice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.notices[n.ID]; !ok {
		return sentinel.ErrNotFound
	}
	cp := *n
	s.notices[n.ID] = &cp
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.notices[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.notices, id)
	return nil
}

func (s *InMemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notices), nil
}
