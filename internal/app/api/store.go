package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	greetingsmemory "github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/adapters/memory"
	greetingsmongo "github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/adapters/persistence/mongo"
	greetingspostgres "github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/adapters/persistence/postgres"
	greetingports "github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/ports"
	"github.com/Apurer/go-gin-greeter-api/internal/platform/migrations"
	"github.com/Apurer/go-gin-greeter-api/internal/platform/mongodb"
	platformpostgres "github.com/Apurer/go-gin-greeter-api/internal/platform/postgres"
)

const disconnectTimeout = 5 * time.Second

// Store bundles the configured greeting repository with its lifecycle hooks.
type Store struct {
	Repository greetingports.Repository
	Driver     StoreDriver

	ensureSchema func(context.Context) error
	close        func()
}

// EnsureSchema creates the timestamp index (mongo) or migrates the table (postgres).
func (s *Store) EnsureSchema(ctx context.Context) error {
	if s == nil || s.ensureSchema == nil {
		return nil
	}
	return s.ensureSchema(ctx)
}

// Close releases the store connection.
func (s *Store) Close() {
	if s != nil && s.close != nil {
		s.close()
	}
}

// OpenStore connects the store selected by cfg.StoreDriver.
func OpenStore(ctx context.Context, cfg Config, logger *slog.Logger) (*Store, error) {
	switch cfg.StoreDriver {
	case StoreDriverMongo:
		db, disconnect, err := mongodb.Open(ctx, cfg.StoreURI, cfg.StoreDatabase, logger)
		if err != nil {
			return nil, err
		}
		repo := greetingsmongo.NewRepository(db)
		return &Store{
			Repository:   repo,
			Driver:       cfg.StoreDriver,
			ensureSchema: repo.EnsureIndexes,
			close: func() {
				closeCtx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
				defer cancel()
				if err := disconnect(closeCtx); err != nil && logger != nil {
					logger.Warn("failed to disconnect mongodb", slog.String("error", err.Error()))
				}
			},
		}, nil
	case StoreDriverPostgres:
		db, cleanup, err := platformpostgres.Open(ctx, cfg.PostgresDSN, logger)
		if err != nil {
			return nil, err
		}
		return &Store{
			Repository: greetingspostgres.NewRepository(db),
			Driver:     cfg.StoreDriver,
			ensureSchema: func(context.Context) error {
				return migrations.Run(db)
			},
			close: cleanup,
		}, nil
	case StoreDriverMemory:
		if logger != nil {
			logger.Warn("using in-memory greeting store; records are lost on restart")
		}
		return &Store{Repository: greetingsmemory.NewRepository(), Driver: cfg.StoreDriver}, nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}
