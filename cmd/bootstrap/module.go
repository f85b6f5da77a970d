package bootstrap

import (
	"campus-placement/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	RedisModule,
	TelemetryModule,
	JWTModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.RealtimeModule,
	components.HandlerModule,
)
