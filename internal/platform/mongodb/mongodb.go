// Package mongodb opens the document store client.
package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	connectTimeout = 10 * time.Second
	pingTimeout    = 5 * time.Second
)

// Connect builds a client for uri. The driver dials lazily, so a nil error
// does not mean the server is reachable; use Ping for that.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	if strings.TrimSpace(uri) == "" {
		return nil, fmt.Errorf("mongodb URI is empty")
	}
	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(connectTimeout).
		SetServerSelectionTimeout(connectTimeout)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	return client, nil
}

// Ping verifies the primary is reachable.
func Ping(ctx context.Context, client *mongo.Client) error {
	if client == nil {
		return fmt.Errorf("mongodb client is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return client.Ping(ctx, readpref.Primary())
}

// Open connects and pings. An unreachable server is logged and the client is
// still returned so requests fail individually until the store comes back.
func Open(ctx context.Context, uri, database string, logger *slog.Logger) (*mongo.Database, func(context.Context) error, error) {
	client, err := Connect(ctx, uri)
	if err != nil {
		return nil, nil, err
	}
	if err := Ping(ctx, client); err != nil {
		if logger != nil {
			logger.Warn("mongodb not reachable at startup", slog.String("database", database), slog.String("error", err.Error()))
		}
	} else if logger != nil {
		logger.Info("mongodb connection established", slog.String("database", database))
	}
	return client.Database(database), client.Disconnect, nil
}
