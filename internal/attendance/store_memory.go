package attendance

import (
	"context"
	"sort"
	"sync"

	"bfcms/pkg/platform/sentinel"
)

// InMemoryStore is the non-persistent Store used in tests and local runs.
type InMemoryStore struct {
	mu      sync.RWMutex
	events  map[string]*Event
	records []*Record
	nextSeq int64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{events: make(map[string]*Event)}
}

func (s *InMemoryStore) CreateEvent(_ context.Context, e *Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *e
	s.events[e.ID] = &cp
	return nil
}

func (s *InMemoryStore) FindEvent(_ context.Context, id string) (*Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.events[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (s *InMemoryStore) ListEvents(_ context.Context, eventType string) ([]*Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Event
	for _, e := range s.events {
		if eventType != "" && e.EventType != eventType {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EventDate > out[j].EventDate })
	return out, nil
}

func (s *InMemoryStore) SetEventTotals(_ context.Context, eventID string, present, absent int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[eventID]
	if !ok {
		return sentinel.ErrNotFound
	}
	e.TotalPresent = present
	e.TotalAbsent = absent
	return nil
}

func (s *InMemoryStore) Upsert(_ context.Context, r *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.records {
		if existing.EventID == r.EventID && existing.MemberID == r.MemberID {
			existing.Status = r.Status
			return nil
		}
	}
	s.nextSeq++
	cp := *r
	cp.Seq = s.nextSeq
	s.records = append(s.records, &cp)
	return nil
}

func (s *InMemoryStore) ListByEvent(_ context.Context, eventID string) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Record
	for _, r := range s.records {
		if r.EventID == eventID {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out, nil
}

func (s *InMemoryStore) ListByMember(_ context.Context, memberID string) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Record
	for _, r := range s.records {
		if r.MemberID == memberID {
			cp := *r
			out = append(out, &cp)
		}
	}
	sortRecent(out)
	return out, nil
}

func (s *InMemoryStore) ListRecentByMember(ctx context.Context, memberID string, limit int) ([]*Record, error) {
	records, err := s.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (s *InMemoryStore) CountEventStatus(_ context.Context, eventID string, status RecordStatus) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, r := range s.records {
		if r.EventID == eventID && r.Status == status {
			count++
		}
	}
	return count, nil
}

func (s *InMemoryStore) CountEvents(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events), nil
}

// sortRecent orders records newest first, insertion sequence breaking ties.
func sortRecent(records []*Record) {
	sort.Slice(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.After(records[j].CreatedAt)
		}
		return records[i].Seq > records[j].Seq
	})
}
