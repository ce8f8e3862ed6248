package workflows

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/sdk/client"

	greetingtypes "github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/application/types"
	"github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/domain"
	"github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/ports"
	greetingworkflows "github.com/Apurer/go-gin-greeter-api/internal/durable/temporal/workflows/greetings"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalGreetingWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineGreetingWorkflows)(nil)
)

// TemporalGreetingWorkflows records greetings through a Temporal workflow.
type TemporalGreetingWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalGreetingWorkflows wires a Temporal client into the orchestrator.
func NewTemporalGreetingWorkflows(c client.Client) *TemporalGreetingWorkflows {
	return &TemporalGreetingWorkflows{client: c, taskQueue: greetingworkflows.GreetingCreationTaskQueue}
}

// CreateGreeting validates locally, so rejected requests never start a
// workflow, then waits for the workflow result. Workflow failures surface as
// store errors.
func (o *TemporalGreetingWorkflows) CreateGreeting(ctx context.Context, input greetingtypes.CreateGreetingInput) (*greetingtypes.CreateGreetingResult, error) {
	if _, err := domain.NewRequest(input.FirstName, input.LastName, input.Age); err != nil {
		return nil, err
	}
	if o == nil || o.client == nil {
		return nil, errors.New("temporal greeting workflows not configured")
	}
	options := client.StartWorkflowOptions{
		ID:        buildGreetingCreationWorkflowID(),
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		greetingworkflows.GreetingCreationWorkflowName,
		greetingworkflows.GreetingCreationWorkflowInput{Command: input, TraceID: workflowTraceID(ctx)},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: start workflow: %w", ports.ErrStore, err)
	}
	var result greetingtypes.CreateGreetingResult
	if err := run.Get(ctx, &result); err != nil {
		return nil, fmt.Errorf("%w: workflow %s: %w", ports.ErrStore, run.GetID(), err)
	}
	return &result, nil
}

// InlineGreetingWorkflows executes the service directly without Temporal.
type InlineGreetingWorkflows struct {
	service ports.Service
}

// NewInlineGreetingWorkflows wraps the greeting service for synchronous execution.
func NewInlineGreetingWorkflows(service ports.Service) *InlineGreetingWorkflows {
	return &InlineGreetingWorkflows{service: service}
}

// CreateGreeting delegates to the application service.
func (o *InlineGreetingWorkflows) CreateGreeting(ctx context.Context, input greetingtypes.CreateGreetingInput) (*greetingtypes.CreateGreetingResult, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline greeting workflows not configured")
	}
	return o.service.Create(ctx, input)
}

func buildGreetingCreationWorkflowID() string {
	return "greeting-creation-" + uuid.NewString()
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
