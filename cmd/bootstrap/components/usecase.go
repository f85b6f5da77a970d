package components

import (
	"campus-placement/internal/outbox"
	"campus-placement/internal/pkg/clock"
	"campus-placement/internal/usecase"
	"campus-placement/internal/usecase/commands"
	"campus-placement/internal/usecase/queries"
	"campus-placement/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	// Commands kick the dispatcher after each commit.
	func(d *outbox.Dispatcher) shared.CommitNotifier { return d },
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewApplicationUseCase,
		commands.NewOfferUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewApplicationQueries,
		queries.NewNotificationQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
