package greetings

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	greetingtypes "github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/application/types"
	greetingports "github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/ports"
)

// RecordGreetingActivityName appends one greeting to the store.
const RecordGreetingActivityName = "greetings.activities.RecordGreeting"

// Activities groups activities that operate on the greeting log.
type Activities struct {
	service greetingports.Service
}

// NewActivities wires the greeting service into the Temporal activities bundle.
func NewActivities(service greetingports.Service) *Activities {
	return &Activities{service: service}
}

// RecordGreeting validates and stores a greeting, returning its acknowledgement.
func (a *Activities) RecordGreeting(ctx context.Context, input greetingtypes.CreateGreetingInput) (*greetingtypes.CreateGreetingResult, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("greeting activity not initialized")
		return nil, errors.New("greeting activity not initialized")
	}
	logger.Info("RecordGreeting activity started", "age", input.Age)
	result, err := a.service.Create(ctx, input)
	if err != nil {
		logger.Error("RecordGreeting activity failed", "error", err)
		return nil, err
	}
	logger.Info("RecordGreeting activity completed")
	return result, nil
}
