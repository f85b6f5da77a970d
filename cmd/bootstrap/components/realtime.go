package components

import (
	"context"
	"log/slog"

	"campus-placement/internal/outbox"
	"campus-placement/internal/pkg/clock"
	"campus-placement/internal/pkg/config"
	"campus-placement/internal/realtime"
	"campus-placement/internal/usecase"
	"campus-placement/internal/usecase/queries"
	"campus-placement/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RealtimeModule = fx.Module("realtime",
	fx.Provide(
		realtime.NewRegistry,
		NewHub,
		NewBroadcaster,
		NewDispatcher,
		NewConnectLimiter,
		NewRealtimeServer,
	),
)

func NewHub(lc fx.Lifecycle, registry *realtime.Registry, cfg config.Config, logger *slog.Logger) *realtime.Hub {
	hub := realtime.NewHub(registry, cfg.Realtime, logger)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			hub.Close()
			return nil
		},
	})
	return hub
}

// NewBroadcaster relays through Redis pub/sub when a client is configured so
// every instance's hub sees every event; otherwise it publishes to the local hub.
func NewBroadcaster(lc fx.Lifecycle, client *redis.Client, hub *realtime.Hub, cfg config.Config, logger *slog.Logger) outbox.Broadcaster {
	if client == nil {
		return hub
	}
	relay := realtime.NewRedisBroadcaster(client, cfg.Redis.Channel, hub, logger)
	lc.Append(fx.Hook{
		OnStart: relay.Start,
		OnStop:  relay.Stop,
	})
	return relay
}

func NewDispatcher(
	lc fx.Lifecycle,
	uow shared.UnitOfWork,
	broadcaster outbox.Broadcaster,
	clk clock.Clock,
	cfg config.Config,
	logger *slog.Logger,
) *outbox.Dispatcher {
	d := outbox.NewDispatcher(uow, broadcaster, clk, logger, cfg.Outbox)
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			d.Start()
			return nil
		},
		OnStop: d.Stop,
	})
	return d
}

func NewConnectLimiter(client *redis.Client, cfg config.Config, logger *slog.Logger) realtime.ConnectLimiter {
	if client == nil {
		return realtime.NewLocalLimiter(cfg.Realtime)
	}
	return realtime.NewRedisLimiter(client, cfg.Realtime, logger)
}

func NewRealtimeServer(
	hub *realtime.Hub,
	tokens usecase.TokenValidator,
	apps queries.ApplicationQueries,
	cfg config.Config,
	logger *slog.Logger,
) *realtime.Server {
	return realtime.NewServer(hub, tokens, apps, cfg.Realtime, cfg.CORS.AllowOrigins, logger)
}
