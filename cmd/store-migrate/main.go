package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/Apurer/go-gin-greeter-api/internal/app/api"
	"github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/adapters/persistence/mongo"
	"github.com/Apurer/go-gin-greeter-api/internal/platform/mongodb"
	platformobservability "github.com/Apurer/go-gin-greeter-api/internal/platform/observability"
)

const serviceName = "greeter-store-migrate"

func main() {
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = run(ctx, cfg, platformobservability.WithLogLevel(cfg.Level()))
	cancel()
	if err != nil {
		log.Fatalf("store migration failed: %v", err)
	}
}

// run creates the timestamp index (mongo) or migrates the table (postgres).
// Every resource it opens is released before it returns.
func run(ctx context.Context, cfg api.Config, opts ...platformobservability.Option) error {
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName, opts...)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	if cfg.StoreDriver == api.StoreDriverMongo {
		return ensureMongoIndexes(ctx, cfg, logger)
	}

	store, err := api.OpenStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.StoreDriver, err)
	}
	defer store.Close()
	if err := store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to migrate %s store: %w", cfg.StoreDriver, err)
	}
	logger.Info("store schema ensured", slog.String("driver", string(cfg.StoreDriver)))
	return nil
}

// ensureMongoIndexes requires a reachable server, unlike the API which only warns.
func ensureMongoIndexes(ctx context.Context, cfg api.Config, logger *slog.Logger) error {
	client, err := mongodb.Connect(ctx, cfg.StoreURI)
	if err != nil {
		return fmt.Errorf("failed to connect mongodb: %w", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			logger.Warn("failed to disconnect mongodb", slog.String("error", err.Error()))
		}
	}()
	if err := mongodb.Ping(ctx, client); err != nil {
		return fmt.Errorf("mongodb not reachable: %w", err)
	}
	if err := mongo.NewRepository(client.Database(cfg.StoreDatabase)).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	logger.Info("store schema ensured",
		slog.String("driver", string(cfg.StoreDriver)),
		slog.String("collection", mongo.CollectionName),
	)
	return nil
}
