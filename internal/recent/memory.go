package recent

import (
	"container/list"
	"context"
	"sync"

	"github.com/couchcryptid/weather-search/internal/domain"
)

// MemoryStore keeps the most recent searches in process, one entry per city.
// Recording a city again moves it to the front; the oldest city is evicted
// once the store holds more than maxEntries.
type MemoryStore struct {
	maxEntries int

	mu     sync.Mutex
	order  *list.List               // of domain.RecentSearch, most recent at the front
	byCity map[string]*list.Element // city id -> element in order
}

// NewMemoryStore creates a store holding at most maxEntries cities.
func NewMemoryStore(maxEntries int) *MemoryStore {
	if maxEntries <= 0 {
		maxEntries = 1
	}
	return &MemoryStore{
		maxEntries: maxEntries,
		order:      list.New(),
		byCity:     make(map[string]*list.Element),
	}
}

func (s *MemoryStore) Name() string { return "memory" }

// Record stores rs as the most recent search.
func (s *MemoryStore) Record(_ context.Context, rs domain.RecentSearch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if el, ok := s.byCity[rs.ID]; ok {
		el.Value = rs
		s.order.MoveToFront(el)
		return nil
	}

	s.byCity[rs.ID] = s.order.PushFront(rs)
	for s.order.Len() > s.maxEntries {
		oldest := s.order.Back()
		s.order.Remove(oldest)
		delete(s.byCity, oldest.Value.(domain.RecentSearch).ID)
	}
	return nil
}

// List returns up to limit searches, most recent first. A non-positive limit
// returns everything.
func (s *MemoryStore) List(_ context.Context, limit int) ([]domain.RecentSearch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 || limit > s.order.Len() {
		limit = s.order.Len()
	}
	out := make([]domain.RecentSearch, 0, limit)
	for el := s.order.Front(); el != nil && len(out) < limit; el = el.Next() {
		out = append(out, el.Value.(domain.RecentSearch))
	}
	return out, nil
}

// Len reports how many cities are stored.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}
