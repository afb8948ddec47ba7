package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/PigFarmBot_Go/internal/config"
	"github.com/osse101/PigFarmBot_Go/internal/database"
	"github.com/osse101/PigFarmBot_Go/internal/database/jsonfile"
	"github.com/osse101/PigFarmBot_Go/internal/database/memory"
	"github.com/osse101/PigFarmBot_Go/internal/database/mongodb"
	"github.com/osse101/PigFarmBot_Go/internal/database/postgres"
	"github.com/osse101/PigFarmBot_Go/internal/repository"
)

// OpenStore opens the document store selected by STORE_BACKEND. PostgreSQL
// migrations are applied before the store is returned.
func OpenStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	var (
		store repository.Store
		err   error
	)

	switch cfg.StoreBackend {
	case config.StoreBackendJSON, "":
		store, err = jsonfile.NewStore(cfg.DataDir)

	case config.StoreBackendMemory:
		store, _ = memory.NewStore()

	case config.StoreBackendPostgres:
		pool, perr := database.NewPool(ctx, cfg.GetDBConnString(), database.PoolConfig{
			MaxConns:    cfg.DBMaxConns,
			MaxIdleTime: cfg.DBMaxConnIdleTime,
			MaxLifetime: cfg.DBMaxConnLifetime,
		})
		if perr != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenStore, perr)
		}
		if err = database.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenStore, err)
		}
		slog.Info(LogMsgMigrationsApplied)
		store = postgres.NewStore(pool)

	case config.StoreBackendMongo:
		store, err = mongodb.NewStore(ctx, cfg.MongoURI, cfg.MongoDB)

	default:
		return nil, fmt.Errorf("%s: %q", ErrMsgUnknownStoreBackend, cfg.StoreBackend)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenStore, err)
	}

	slog.Info(LogMsgStoreOpened, "backend", cfg.StoreBackend)
	return store, nil
}
