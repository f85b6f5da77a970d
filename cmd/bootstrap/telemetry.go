package bootstrap

import (
	"context"
	"log/slog"

	"campus-placement/internal/pkg/config"
	"campus-placement/internal/pkg/telemetry"

	"go.uber.org/fx"
)

var TelemetryModule = fx.Module("telemetry",
	fx.Invoke(registerTelemetry),
)

func registerTelemetry(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) {
	var shutdown func(context.Context) error
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			var err error
			shutdown, err = telemetry.Setup(ctx, cfg.Telemetry)
			if err != nil {
				return err
			}
			if cfg.Telemetry.Endpoint != "" {
				logger.Info("tracing enabled", "endpoint", cfg.Telemetry.Endpoint, "service", cfg.Telemetry.ServiceName)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if shutdown == nil {
				return nil
			}
			return shutdown(ctx)
		},
	})
}
