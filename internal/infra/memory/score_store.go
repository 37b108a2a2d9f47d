package memory

import (
	"context"
	"sync"

	"quiz-widget/internal/domain"
)

// ScoreStore is an in-memory key/value store; values vanish with the process.
type ScoreStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewScoreStore() *ScoreStore {
	return &ScoreStore{
		values: make(map[string]string),
	}
}

func (s *ScoreStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *ScoreStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	if !ok {
		return "", domain.ErrScoreNotFound
	}
	return value, nil
}
