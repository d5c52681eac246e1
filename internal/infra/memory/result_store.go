package memory

import (
	"context"
	"fmt"
	"sync"

	"disc-quiz-service/internal/domain"
)

// ResultStore keeps results in a map with the same uniqueness rule as the SQL stores.
type ResultStore struct {
	mu      sync.RWMutex
	nextID  int64
	byCode  map[string]domain.StoredResult
	ordered []string
}

func NewResultStore() *ResultStore {
	return &ResultStore{byCode: make(map[string]domain.StoredResult)}
}

func (s *ResultStore) EnsureSchema(_ context.Context) error {
	return nil
}

func (s *ResultStore) Save(_ context.Context, code string, dist domain.Distribution) (domain.StoredResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byCode[code]; ok {
		return domain.StoredResult{}, fmt.Errorf("save result %s: %w", code, domain.ErrDuplicateCode)
	}
	s.nextID++
	stored := domain.StoredResult{ID: s.nextID, Code: code, Distribution: dist}
	s.byCode[code] = stored
	s.ordered = append(s.ordered, code)
	return stored, nil
}

func (s *ResultStore) Find(_ context.Context, code string) (domain.StoredResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.byCode[code]
	if !ok {
		return domain.StoredResult{}, domain.ErrResultNotFound
	}
	return stored, nil
}

// Results returns every stored row in insertion order.
func (s *ResultStore) Results() []domain.StoredResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.StoredResult, 0, len(s.ordered))
	for _, code := range s.ordered {
		out = append(out, s.byCode[code])
	}
	return out
}
