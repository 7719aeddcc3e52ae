package factory

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/shelfd/shelfd/internal/config"
	storepkg "github.com/shelfd/shelfd/internal/store"
	"github.com/shelfd/shelfd/internal/store/memory"
	storepg "github.com/shelfd/shelfd/internal/store/postgres"
	storelite "github.com/shelfd/shelfd/internal/store/sqlite"
)

// NewStore builds the store.Store selected by cfg.StoreDriver.
// SQL-backed drivers have their schema applied before the store is returned,
// so health checks can probe immediately.
func NewStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (storepkg.Store, error) {
	switch cfg.StoreDriver {
	case "memory":
		log.Warn().Msg("using in-memory store; data is lost on shutdown")
		return memory.New(), nil

	case "sqlite":
		db, err := storelite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := storelite.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		log.Info().Str("path", cfg.SQLitePath).Msg("sqlite store ready")
		return storelite.NewWithDB(db), nil

	case "postgres":
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("SHELFD_POSTGRES_DSN is required when STORE_DRIVER=postgres")
		}
		db, err := storepg.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := storepg.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		log.Info().Msg("postgres store ready")
		return storepg.NewWithDB(db), nil

	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER: %s", cfg.StoreDriver)
	}
}
