package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"campus-placement/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedisClient,
	),
)

// NewRedisClient returns nil when REDIS_ADDR is unset; callers fall back to
// process-local fan-out and rate limiting.
func NewRedisClient(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*redis.Client, error) {
	if cfg.Redis.Addr == "" {
		logger.Info("redis not configured, realtime fan-out stays in-process")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Redis.Addr, err)
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return client, nil
}
