package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"quiz-widget/internal/domain"
)

// ScoreStore keeps persisted scores in Redis under a namespaced key.
// A zero ttl keeps values until they are overwritten.
type ScoreStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewScoreStore(client *redis.Client, ttl time.Duration) *ScoreStore {
	return &ScoreStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *ScoreStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("store score: %w", err)
	}
	return nil
}

func (s *ScoreStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrScoreNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read score: %w", err)
	}
	return value, nil
}

func (s *ScoreStore) key(key string) string {
	return "quiz:local:" + key
}
