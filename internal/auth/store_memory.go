package auth

import (
	"context"
	"sort"
	"sync"

	"bfcms/pkg/platform/sentinel"
)

// InMemoryStore is the non-persistent Store used in tests and local runs.
type InMemoryStore struct {
	mu      sync.RWMutex
	byID    map[string]*User
	byEmail map[string]string
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		byID:    make(map[string]*User),
		byEmail: make(map[string]string),
	}
}

func (s *InMemoryStore) Create(_ context.Context, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[user.Email]; exists {
		return sentinel.ErrConflict
	}
	cp := *user
	s.byID[user.ID] = &cp
	s.byEmail[user.Email] = user.ID
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.byID[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (s *InMemoryStore) FindByEmail(_ context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[email]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *s.byID[id]
	return &cp, nil
}

func (s *InMemoryStore) List(_ context.Context) ([]*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]*User, 0, len(s.byID))
	for _, u := range s.byID {
		cp := *u
		users = append(users, &cp)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}

func (s *InMemoryStore) UpdateRole(_ context.Context, id string, role Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.byID[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	user.Role = role
	return nil
}

func (s *InMemoryStore) UpdatePassword(_ context.Context, id string, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.byID[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.byID[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	delete(s.byEmail, user.Email)
	delete(s.byID, id)
	return nil
}

func (s *InMemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID), nil
}

func (s *InMemoryStore) CountByRole(_ context.Context) (map[Role]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[Role]int)
	for _, u := range s.byID {
		counts[u.Role]++
	}
	return counts, nil
}
