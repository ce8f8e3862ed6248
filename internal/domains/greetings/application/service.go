package application

import (
	"context"
	"errors"
	"time"

	"github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/application/types"
	"github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/domain"
	"github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/ports"
)

// Service orchestrates the greeting log use cases.
type Service struct {
	repo ports.Repository
	now  func() time.Time
}

// Option customises the service.
type Option func(*Service)

// WithClock overrides the time source used to stamp new greetings.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the greeting service with its store.
func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Create validates the request, stamps it and appends exactly one record.
// The store-assigned identifier is not returned.
func (s *Service) Create(ctx context.Context, input types.CreateGreetingInput) (*types.CreateGreetingResult, error) {
	req, err := domain.NewRequest(input.FirstName, input.LastName, input.Age)
	if err != nil {
		return nil, mapError(err)
	}
	if s.repo == nil {
		return nil, storeError(errors.New("greeting repository not configured"))
	}
	greeting := domain.NewGreeting(req, s.now().UTC())
	if _, err := s.repo.Insert(ctx, greeting); err != nil {
		return nil, storeError(err)
	}
	return &types.CreateGreetingResult{Message: domain.Message(req)}, nil
}

// List returns projections of stored greetings at or after MinDate, in store order,
// silently capped at domain.MaxListResults.
func (s *Service) List(ctx context.Context, input types.ListGreetingsInput) ([]domain.Projection, error) {
	if s.repo == nil {
		return nil, storeError(errors.New("greeting repository not configured"))
	}
	query := ports.Query{Limit: domain.MaxListResults}
	if input.MinDate != nil {
		bound := input.MinDate.UTC()
		query.MinTimestamp = &bound
	}
	records, err := s.repo.Find(ctx, query)
	if err != nil {
		return nil, storeError(err)
	}
	if len(records) > domain.MaxListResults {
		records = records[:domain.MaxListResults]
	}
	return domain.ProjectAll(records)
}

var _ ports.Service = (*Service)(nil)
