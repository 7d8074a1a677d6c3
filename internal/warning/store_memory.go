package warning

import (
	"context"
	"sort"
	"sync"
	"time"

	"bfcms/pkg/platform/sentinel"
)

// InMemoryStore is the non-persistent ledger used in tests and local runs.
type InMemoryStore struct {
	mu       sync.RWMutex
	warnings map[string]*Warning
	order    []string
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{warnings: make(map[string]*Warning)}
}

// RaiseIfNoneSince holds the mutex across both the window check and the
// insert, giving the same at-most-one guarantee as the single-statement
// postgres insert.
func (s *InMemoryStore) RaiseIfNoneSince(_ context.Context, w *Warning, since time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.warnings {
		if existing.MemberID == w.MemberID &&
			existing.WarningType == w.WarningType &&
			!existing.CreatedAt.Before(since) {
			return sentinel.ErrSuppressed
		}
	}
	cp := *w
	s.warnings[w.ID] = &cp
	s.order = append(s.order, w.ID)
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id string) (*Warning, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.warnings[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *w
	return &cp, nil
}

func (s *InMemoryStore) List(_ context.Context) ([]*Warning, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Warning, 0, len(s.order))
	for _, id := range s.order {
		cp := *s.warnings[id]
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemoryStore) SetLetterGenerated(_ context.Context, id string) error {
	return s.flip(id, func(w *Warning) { w.LetterGenerated = true })
}

func (s *InMemoryStore) SetEmailSent(_ context.Context, id string) error {
	return s.flip(id, func(w *Warning) { w.EmailSent = true })
}

func (s *InMemoryStore) CountPendingEmail(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, w := range s.warnings {
		if !w.EmailSent {
			count++
		}
	}
	return count, nil
}

func (s *InMemoryStore) flip(id string, set func(*Warning)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.warnings[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	set(w)
	return nil
}
