package ports

import (
	"context"
	"encoding/json"
)

// Reply is the liveness response. Data is only set for echoes.
type Reply struct {
	Message string
	Data    json.RawMessage
}

// Service defines the liveness use cases exposed to adapters.
type Service interface {
	Echo(ctx context.Context, payload json.RawMessage) (*Reply, error)
	Status(ctx context.Context) (*Reply, error)
}
