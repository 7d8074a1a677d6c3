package audit

import (
	"context"
	"sync"
)

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, e *Event) error
	// List returns the most recent events, newest first, at most limit.
	List(ctx context.Context, limit int) ([]*Event, error)
}

// InMemoryStore is the non-persistent Store used in tests and local runs.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []*Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, e *Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *e
	s.events = append(s.events, &cp)
	return nil
}

func (s *InMemoryStore) List(_ context.Context, limit int) ([]*Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Event, 0, limit)
	for i := len(s.events) - 1; i >= 0 && len(out) < limit; i-- {
		cp := *s.events[i]
		out = append(out, &cp)
	}
	return out, nil
}
