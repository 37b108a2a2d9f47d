package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"quiz-widget/internal/app"
	"quiz-widget/internal/config"
	"quiz-widget/internal/infra/memory"
	redisstore "quiz-widget/internal/infra/redis"
	"quiz-widget/internal/infra/sqlite"
)

// openScoreStore picks the score store named by scores.driver. The returned
// close func is always safe to call.
func openScoreStore(ctx context.Context, cfg config.Config) (app.ScoreStore, func() error, error) {
	noop := func() error { return nil }
	switch strings.ToLower(cfg.Scores.Driver) {
	case "", "sqlite":
		store, err := sqlite.Open(ctx, cfg.Scores.Path)
		if err != nil {
			return nil, noop, err
		}
		return store, store.Close, nil
	case "redis":
		client, err := newRedisClient(ctx, cfg)
		if err != nil {
			return nil, noop, err
		}
		ttl := config.TTLDuration(cfg.Redis.TTL, 0)
		return redisstore.NewScoreStore(client, ttl), client.Close, nil
	case "memory":
		return memory.NewScoreStore(), noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown scores driver %q (expected sqlite|redis|memory)", cfg.Scores.Driver)
	}
}

func newRedisClient(ctx context.Context, cfg config.Config) (*redis.Client, error) {
	if cfg.Redis.Addr == "" {
		return nil, fmt.Errorf("redis addr not configured")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}
