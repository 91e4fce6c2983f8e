package handlers

import (
	"sync"

	"pv-battery-estimator/internal/simulator"

	"github.com/google/uuid"
)

// ResultStore keeps the most recent simulation results in memory so their
// hourly ledger can be fetched later. When full, the oldest entry is evicted.
type ResultStore struct {
	mu      sync.RWMutex
	size    int
	order   []string
	results map[string]*simulator.Result
}

// NewResultStore creates a store holding at most size results (minimum 1).
func NewResultStore(size int) *ResultStore {
	if size < 1 {
		size = 1
	}
	return &ResultStore{size: size, results: make(map[string]*simulator.Result, size)}
}

// Put stores res under a new id and returns the id.
func (s *ResultStore) Put(res *simulator.Result) string {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.order) >= s.size {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.results, oldest)
	}
	s.order = append(s.order, id)
	s.results[id] = res
	return id
}

func (s *ResultStore) Get(id string) (*simulator.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res, ok := s.results[id]
	return res, ok
}

func (s *ResultStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
