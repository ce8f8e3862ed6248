package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-gin-greeter-api/internal/app/api"
	greetingactivities "github.com/Apurer/go-gin-greeter-api/internal/durable/temporal/activities/greetings"
	greetingworkflows "github.com/Apurer/go-gin-greeter-api/internal/durable/temporal/workflows/greetings"
	platformobservability "github.com/Apurer/go-gin-greeter-api/internal/platform/observability"
)

func main() {
	ctx := context.Background()
	const serviceName = "greeter-worker"
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName, platformobservability.WithLogLevel(cfg.Level()))
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	store, err := api.OpenStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("worker failed to open store", slog.String("driver", string(cfg.StoreDriver)), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()
	greetingActivities := greetingactivities.NewActivities(api.NewGreetingService(store.Repository, instruments))

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, greetingworkflows.GreetingCreationTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(greetingworkflows.GreetingCreationWorkflow, workflow.RegisterOptions{Name: greetingworkflows.GreetingCreationWorkflowName})
	w.RegisterActivityWithOptions(greetingActivities.RecordGreeting, activity.RegisterOptions{Name: greetingactivities.RecordGreetingActivityName})

	logger.Info("worker listening", slog.String("taskQueue", greetingworkflows.GreetingCreationTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
