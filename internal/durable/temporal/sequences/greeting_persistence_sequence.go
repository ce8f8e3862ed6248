package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	greetingtypes "github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/application/types"
	greetingactivities "github.com/Apurer/go-gin-greeter-api/internal/durable/temporal/activities/greetings"
)

// RunGreetingPersistenceSequence records one greeting. The activity runs at
// most once so a failed insert is never replayed into a duplicate record.
func RunGreetingPersistenceSequence(ctx workflow.Context, input greetingtypes.CreateGreetingInput) (*greetingtypes.CreateGreetingResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("greeting persistence sequence started")
	options := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var result greetingtypes.CreateGreetingResult
	err := workflow.ExecuteActivity(ctx, greetingactivities.RecordGreetingActivityName, input).Get(ctx, &result)
	if err != nil {
		logger.Error("greeting persistence sequence failed", "error", err)
		return nil, err
	}
	logger.Info("greeting persistence sequence completed")
	return &result, nil
}
