package ports

import (
	"context"

	"github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/application/types"
)

// WorkflowOrchestrator runs the create use case, durably or inline.
type WorkflowOrchestrator interface {
	CreateGreeting(ctx context.Context, input types.CreateGreetingInput) (*types.CreateGreetingResult, error)
}
