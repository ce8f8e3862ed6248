package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	greeterserver "github.com/Apurer/go-gin-greeter-api/go"
	greetingsobs "github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/adapters/observability"
	greetingsworkflows "github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/adapters/workflows"
	greetingsapp "github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/application"
	greetingports "github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/ports"
	pingapp "github.com/Apurer/go-gin-greeter-api/internal/domains/ping/application"
	"github.com/Apurer/go-gin-greeter-api/internal/platform/metrics"
	platformobservability "github.com/Apurer/go-gin-greeter-api/internal/platform/observability"
	"github.com/Apurer/go-gin-greeter-api/internal/platform/requestid"
)

const serviceName = "greeter-api"

// Run boots the greeter HTTP API and blocks until ctx is cancelled or a
// termination signal arrives.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName, platformobservability.WithLogLevel(cfg.Level()))
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

	store, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.StoreDriver, err)
	}
	defer store.Close()
	if err := store.EnsureSchema(ctx); err != nil {
		logger.Warn("failed to ensure store schema", slog.String("driver", string(cfg.StoreDriver)), slog.String("error", err.Error()))
	}

	service := NewGreetingService(store.Repository, instruments)
	var workflows greetingports.WorkflowOrchestrator = greetingsworkflows.NewInlineGreetingWorkflows(service)
	if cfg.TemporalEnabled {
		temporalClient, err := connectTemporalClient(cfg, instruments)
		if err != nil {
			logger.Warn("Temporal workflows unavailable, recording greetings inline", slog.String("error", err.Error()))
		} else {
			defer temporalClient.Close()
			workflows = greetingsworkflows.NewTemporalGreetingWorkflows(temporalClient)
			logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
		}
	}

	if cfg.Level() > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := NewRouter(service, workflows, logger, metrics.NewHTTP("greeter"))
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return serve(ctx, srv, cfg.ShutdownTimeout, logger)
}

// NewGreetingService wraps the core greeting service with the observability decorator.
func NewGreetingService(repo greetingports.Repository, instruments *platformobservability.Instruments) greetingports.Service {
	core := greetingsapp.NewService(repo)
	if instruments == nil {
		return greetingsobs.New(core)
	}
	return greetingsobs.New(
		core,
		greetingsobs.WithLogger(instruments.Logger),
		greetingsobs.WithTracer(instruments.Tracer("internal.greetings.application")),
		greetingsobs.WithMeter(instruments.Meter("internal.greetings.application")),
	)
}

// NewRouter assembles the gin engine with middleware, API routes and /metrics.
func NewRouter(service greetingports.Service, workflows greetingports.WorkflowOrchestrator, logger *slog.Logger, httpMetrics *metrics.HTTP) *gin.Engine {
	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		requestid.Middleware(),
		otelgin.Middleware(serviceName),
		httpMetrics.Middleware(),
		accessLog(logger),
	)
	handlers := greeterserver.ApiHandleFunctions{
		GreetingAPI: greeterserver.NewGreetingAPI(service, workflows),
		PingAPI:     greeterserver.NewPingAPI(pingapp.NewService()),
	}
	router := greeterserver.NewRouterWithGinEngine(engine, handlers)
	router.GET("/metrics", gin.WrapH(httpMetrics.Handler()))
	return router
}

func accessLog(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if logger == nil {
			return
		}
		attrs := []slog.Attr{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
			slog.String("request.id", requestid.FromContext(c.Request.Context())),
		}
		level := slog.LevelInfo
		if c.Writer.Status() >= http.StatusInternalServerError {
			level = slog.LevelError
			if len(c.Errors) > 0 {
				attrs = append(attrs, slog.String("error", c.Errors.String()))
			}
		}
		logger.LogAttrs(c.Request.Context(), level, "http request", attrs...)
	}
}

func serve(ctx context.Context, srv *http.Server, timeout time.Duration, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("greeter API listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("greeter API server exited", slog.String("addr", srv.Addr), slog.String("error", err.Error()))
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down greeter API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
