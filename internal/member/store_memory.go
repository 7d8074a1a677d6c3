package member

import (
	"context"
	"sort"
	"strings"
	"sync"

	"bfcms/pkg/platform/sentinel"
)

// InMemoryStore is the non-persistent Store used in tests and local runs.
type InMemoryStore struct {
	mu      sync.RWMutex
	members map[string]*Member
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{members: make(map[string]*Member)}
}

func (s *InMemoryStore) Create(_ context.Context, m *Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *m
	s.members[m.ID] = &cp
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id string) (*Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.members[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (s *InMemoryStore) List(_ context.Context, filter Filter) ([]*Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Member
	for _, m := range s.members {
		if !matches(m, filter) {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemoryStore) ListActive(ctx context.Context) ([]*Member, error) {
	return s.List(ctx, Filter{Status: string(StatusActive)})
}

func (s *InMemoryStore) Update(_ context.Context, m *Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[m.ID]; !ok {
		return sentinel.ErrNotFound
	}
	cp := *m
	s.members[m.ID] = &cp
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.members, id)
	return nil
}

func (s *InMemoryStore) CountJoinedInYear(_ context.Context, year int) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, m := range s.members {
		if m.DateJoined.Year() == year {
			count++
		}
	}
	return count, nil
}

func (s *InMemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.members), nil
}

func (s *InMemoryStore) CountByStatus(_ context.Context, status Status) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, m := range s.members {
		if m.Status == status {
			count++
		}
	}
	return count, nil
}

func (s *InMemoryStore) CountActiveByDepartment(_ context.Context) (map[Department]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[Department]int)
	for _, m := range s.members {
		if m.Status == StatusActive {
			counts[m.Department]++
		}
	}
	return counts, nil
}

func matches(m *Member, f Filter) bool {
	if f.Department != "" && string(m.Department) != f.Department {
		return false
	}
	if f.Status != "" && string(m.Status) != f.Status {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(m.FullName), needle) &&
			!strings.Contains(strings.ToLower(m.MembershipNumber), needle) &&
			!strings.Contains(strings.ToLower(m.Email), needle) {
			return false
		}
	}
	return true
}
