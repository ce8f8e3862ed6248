package ports

import (
	"context"

	"github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/application/types"
	"github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/domain"
)

// Service exposes greeting use cases to adapters.
type Service interface {
	Create(ctx context.Context, input types.CreateGreetingInput) (*types.CreateGreetingResult, error)
	List(ctx context.Context, input types.ListGreetingsInput) ([]domain.Projection, error)
}
