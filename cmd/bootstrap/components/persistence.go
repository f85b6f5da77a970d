package components

import (
	"log/slog"

	"campus-placement/internal/infra/memory"
	"campus-placement/internal/infra/query"
	"campus-placement/internal/infra/uow"
	"campus-placement/internal/pkg/config"
	"campus-placement/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		query.New,
		memory.NewStore,
		NewUnitOfWork,
	),
)

// NewUnitOfWork picks the store by STORE_DRIVER. The memory store keeps
// everything in process and is lost on restart.
func NewUnitOfWork(cfg config.Config, pool *pgxpool.Pool, q *query.Queries, store *memory.Store, logger *slog.Logger) shared.UnitOfWork {
	if cfg.DB.UsesMemory() {
		logger.Warn("using in-memory store, data will not survive a restart")
		return memory.NewUnitOfWork(store)
	}
	return uow.NewPostgresUoW(pool, q)
}
