package contribution

import (
	"context"
	"sort"
	"sync"
)

// InMemoryStore is the non-persistent contribution store used in tests and
// local runs.
type InMemoryStore struct {
	mu            sync.RWMutex
	contributions []*Contribution
	nextSeq       int64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Create(_ context.Context, c *Contribution) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSeq++
	cp := *c
	cp.Seq = s.nextSeq
	s.contributions = append(s.contributions, &cp)
	return nil
}

func (s *InMemoryStore) List(_ context.Context, f Filter) ([]*Contribution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Contribution
	for _, c := range s.contributions {
		if f.MemberID != "" && c.MemberID != f.MemberID {
			continue
		}
		if f.ContributionType != "" && c.ContributionType != f.ContributionType {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq > out[j].Seq })
	return out, nil
}

func (s *InMemoryStore) TotalsByType(_ context.Context) ([]TypeTotal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	byType := make(map[string]*TypeTotal)
	for _, c := range s.contributions {
		t, ok := byType[c.ContributionType]
		if !ok {
			t = &TypeTotal{ContributionType: c.ContributionType}
			byType[c.ContributionType] = t
		}
		t.Total += c.Amount
		t.Count++
	}
	out := make([]TypeTotal, 0, len(byType))
	for _, t := range byType {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	return out, nil
}

func (s *InMemoryStore) TopContributors(_ context.Context, limit int) ([]Contributor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	byMember := make(map[string]*Contributor)
	for _, c := range s.contributions {
		m, ok := byMember[c.MemberID]
		if !ok {
			m = &Contributor{MemberID: c.MemberID, MemberName: c.MemberName}
			byMember[c.MemberID] = m
		}
		m.Total += c.Amount
	}
	out := make([]Contributor, 0, len(byMember))
	for _, m := range byMember {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *InMemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.contributions), nil
}
