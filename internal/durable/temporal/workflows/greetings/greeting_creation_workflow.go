package greetings

import (
	"go.temporal.io/sdk/workflow"

	greetingtypes "github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/application/types"
	"github.com/Apurer/go-gin-greeter-api/internal/durable/temporal/sequences"
)

const (
	// GreetingCreationWorkflowName is the public identifier for registering the workflow.
	GreetingCreationWorkflowName = "greetings.workflows.Creation"
	// GreetingCreationTaskQueue is the queue consumed by the greeting worker.
	GreetingCreationTaskQueue = "GREETING_CREATION"
)

// GreetingCreationWorkflowInput carries the say-hello command.
type GreetingCreationWorkflowInput struct {
	Command greetingtypes.CreateGreetingInput
	TraceID string
}

// GreetingCreationWorkflow records a greeting through the persistence sequence.
func GreetingCreationWorkflow(ctx workflow.Context, input GreetingCreationWorkflowInput) (*greetingtypes.CreateGreetingResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("GreetingCreationWorkflow started", withTraceID(input.TraceID)...)
	result, err := sequences.RunGreetingPersistenceSequence(ctx, input.Command)
	if err != nil {
		logger.Error("GreetingCreationWorkflow failed", withTraceID(input.TraceID, "error", err)...)
		return nil, err
	}
	logger.Info("GreetingCreationWorkflow completed", withTraceID(input.TraceID)...)
	return result, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
