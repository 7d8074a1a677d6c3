package document

import (
	"context"
	"sort"
	"sync"

	"bfcms/pkg/platform/sentinel"
)

// Store persists office documents.
type Store interface {
	Create(ctx context.Context, d *Document) error
	FindByID(ctx context.Context, id string) (*Document, error)
	// List returns documents newest first, without file payloads loaded.
	List(ctx context.Context, filter Filter) ([]*Document, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// InMemoryStore is the non-persistent Store used in tests and local runs.
type InMemoryStore struct {
	mu        sync.RWMutex
	documents map[string]*Document
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{documents: make(map[string]*Document)}
}

func (s *InMemoryStore) Create(_ context.Context, d *Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *d
	s.documents[d.ID] = &cp
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id string) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.documents[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (s *InMemoryStore) List(_ context.Context, filter Filter) ([]*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Document
	for _, d := range s.documents {
		if filter.Office != "" && string(d.Office) != filter.Office {
			continue
		}
		if filter.Category != "" && d.Category != filter.Category {
			continue
		}
		cp := *d
		cp.FileData = ""
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.documents, id)
	return nil
}

func (s *InMemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents), nil
}
