//go:build unit

package realtime_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"campus-placement/internal/domain/user"
	"campus-placement/internal/pkg/config"
	"campus-placement/internal/pkg/errs"
	"campus-placement/internal/realtime"
	"campus-placement/internal/testutil/builder"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisBroadcaster_RelaysAcrossInstances(t *testing.T) {
	ctx := context.Background()
	_, client := newRedis(t)
	cfg := config.NewTestConfig()
	logger := slog.New(slog.DiscardHandler)

	hubA := newHub(cfg.Realtime)
	hubB := newHub(cfg.Realtime)
	relayA := realtime.NewRedisBroadcaster(client, cfg.Redis.Channel, hubA, logger)
	relayB := realtime.NewRedisBroadcaster(client, cfg.Redis.Channel, hubB, logger)
	require.NoError(t, relayA.Start(ctx))
	require.NoError(t, relayB.Start(ctx))
	t.Cleanup(func() {
		_ = relayA.Stop(ctx)
		_ = relayB.Stop(ctx)
	})

	studentID := uuid.New()
	onA, err := hubA.Connect(builder.Student(t, studentID))
	require.NoError(t, err)
	onB, err := hubB.Connect(builder.Student(t, studentID))
	require.NoError(t, err)

	sent := message(7)
	require.NoError(t, relayA.Publish(ctx, user.UserTopic(studentID), sent))

	for _, c := range []*realtime.Client{onA, onB} {
		got := receive(t, c)
		assert.Equal(t, sent.EventID, got.EventID)
		assert.Equal(t, user.UserTopic(studentID), got.Topic)
		assert.True(t, sent.OccurredAt.Equal(got.OccurredAt))
	}
}

func TestRedisBroadcaster_PublishFailureIsDeliveryError(t *testing.T) {
	ctx := context.Background()
	mr, client := newRedis(t)
	relay := realtime.NewRedisBroadcaster(client, "placement:test", newHub(config.NewTestConfig().Realtime), slog.New(slog.DiscardHandler))

	mr.Close()

	err := relay.Publish(ctx, user.UserTopic(uuid.New()), message(1))
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrDelivery))
	assert.Equal(t, errs.KindDelivery, errs.KindOf(err))
}

func TestRedisBroadcaster_StopWithoutStart(t *testing.T) {
	_, client := newRedis(t)
	relay := realtime.NewRedisBroadcaster(client, "placement:test", newHub(config.NewTestConfig().Realtime), slog.New(slog.DiscardHandler))
	assert.NoError(t, relay.Stop(context.Background()))
}

func TestRedisLimiter(t *testing.T) {
	ctx := context.Background()
	mr, client := newRedis(t)
	cfg := config.NewTestConfig().Realtime
	cfg.ConnectRate = 1
	cfg.ConnectBurst = 3
	limiter := realtime.NewRedisLimiter(client, cfg, slog.New(slog.DiscardHandler))

	for i := range 3 {
		assert.True(t, limiter.Allow(ctx, "10.0.0.1"), "attempt %d", i+1)
	}
	assert.False(t, limiter.Allow(ctx, "10.0.0.1"))
	assert.True(t, limiter.Allow(ctx, "10.0.0.2"), "keys are independent")

	mr.FastForward(4 * time.Second)
	assert.True(t, limiter.Allow(ctx, "10.0.0.1"), "window expired")

	mr.Close()
	assert.True(t, limiter.Allow(ctx, "10.0.0.1"), "fails open without redis")
}

func TestLocalLimiter(t *testing.T) {
	ctx := context.Background()
	cfg := config.NewTestConfig().Realtime
	cfg.ConnectRate = 0.001
	cfg.ConnectBurst = 2
	limiter := realtime.NewLocalLimiter(cfg)

	assert.True(t, limiter.Allow(ctx, "10.0.0.1"))
	assert.True(t, limiter.Allow(ctx, "10.0.0.1"))
	assert.False(t, limiter.Allow(ctx, "10.0.0.1"))
	assert.True(t, limiter.Allow(ctx, "10.0.0.2"))

	cfg.ConnectRate = 0
	unlimited := realtime.NewLocalLimiter(cfg)
	for range 50 {
		require.True(t, unlimited.Allow(ctx, "10.0.0.1"))
	}
}
