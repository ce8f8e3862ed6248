package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	greetingtypes "github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/application/types"
	"github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/domain"
	"github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/ports"
	"github.com/Apurer/go-gin-greeter-api/internal/platform/requestid"
	"github.com/Apurer/go-gin-greeter-api/internal/shared/validation"
)

const tracerName = "github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/adapters/observability/service"

// Service decorates the greetings port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// Create records a greeting. Names are kept out of logs and spans.
func (s *Service) Create(ctx context.Context, input greetingtypes.CreateGreetingInput) (*greetingtypes.CreateGreetingResult, error) {
	ctx, span := s.startSpan(ctx, "GreetingService.Create", attribute.Int("greeting.age", input.Age))
	defer span.End()

	s.logInfo(ctx, "creating greeting", slog.Int("age", input.Age))
	result, err := s.inner.Create(ctx, input)
	if err != nil {
		s.metrics.recordFailure(ctx, "create", err)
		return nil, s.handleError(ctx, span, err, "failed to create greeting")
	}
	s.metrics.recordCreated(ctx)
	s.logInfo(ctx, "greeting created")
	return result, nil
}

// List returns projections newer than the optional bound.
func (s *Service) List(ctx context.Context, input greetingtypes.ListGreetingsInput) ([]domain.Projection, error) {
	attrs := []attribute.KeyValue{attribute.Bool("greeting.bounded", input.MinDate != nil)}
	logAttrs := []slog.Attr{}
	if input.MinDate != nil {
		attrs = append(attrs, attribute.String("greeting.min_date", input.MinDate.UTC().Format("2006-01-02T15:04:05.999999999Z07:00")))
		logAttrs = append(logAttrs, slog.Time("min_date", *input.MinDate))
	}
	ctx, span := s.startSpan(ctx, "GreetingService.List", attrs...)
	defer span.End()

	s.logInfo(ctx, "listing greetings", logAttrs...)
	result, err := s.inner.List(ctx, input)
	if err != nil {
		s.metrics.recordFailure(ctx, "list", err)
		return nil, s.handleError(ctx, span, err, "failed to list greetings", logAttrs...)
	}
	span.SetAttributes(attribute.Int("greeting.result.count", len(result)))
	s.metrics.recordListed(ctx, len(result))
	s.logInfo(ctx, "listed greetings", slog.Int("count", len(result)))
	return result, nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if id := requestid.FromContext(ctx); id != "" {
		attrs = append(attrs, attribute.String("request.id", id))
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, withRequestID(ctx, attrs)...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	level := slog.LevelError
	if errors.Is(err, validation.ErrValidation) {
		level = slog.LevelWarn
	}
	s.logger.LogAttrs(ctx, level, msg, withRequestID(ctx, attrs)...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func withRequestID(ctx context.Context, attrs []slog.Attr) []slog.Attr {
	if id := requestid.FromContext(ctx); id != "" {
		return append(attrs, slog.String("request.id", id))
	}
	return attrs
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	created  metric.Int64Counter
	failures metric.Int64Counter
	listSize metric.Int64Histogram
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("greetings.service.created", metric.WithDescription("Number of greetings recorded"))
	failures, _ := m.Int64Counter("greetings.service.failures", metric.WithDescription("Number of failed greeting operations"))
	listSize, _ := m.Int64Histogram("greetings.service.list.size", metric.WithDescription("Records returned per list call"))
	return serviceMetrics{created: created, failures: failures, listSize: listSize}
}

func (m serviceMetrics) recordCreated(ctx context.Context) {
	if m.created == nil {
		return
	}
	m.created.Add(ctx, 1)
}

func (m serviceMetrics) recordListed(ctx context.Context, n int) {
	if m.listSize == nil {
		return
	}
	m.listSize.Record(ctx, int64(n))
}

func (m serviceMetrics) recordFailure(ctx context.Context, op string, err error) {
	if m.failures == nil {
		return
	}
	m.failures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", op),
		attribute.String("error.kind", errorKind(err)),
	))
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, validation.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrIntegrity):
		return "integrity"
	case errors.Is(err, ports.ErrStore):
		return "store"
	default:
		return "unknown"
	}
}

var _ ports.Service = (*Service)(nil)
