package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/domain"
	"github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/ports"
	"github.com/Apurer/go-gin-greeter-api/internal/shared/identifier"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an append-only in-memory greeting store. Find returns records
// in insertion order.
type Repository struct {
	mu        sync.RWMutex
	greetings []*domain.Greeting
	newID     func() string
}

func NewRepository() *Repository {
	return &Repository{newID: identifier.New}
}

// WithIDGenerator overrides identifier assignment for deterministic tests.
func (r *Repository) WithIDGenerator(gen func() string) {
	if gen != nil {
		r.newID = gen
	}
}

func (r *Repository) Insert(_ context.Context, greeting *domain.Greeting) (string, error) {
	if greeting == nil {
		return "", errors.New("greeting is nil")
	}
	id, err := identifier.Normalize(identifier.FromString(r.newID()))
	if err != nil {
		return "", err
	}
	clone := *greeting
	clone.ID = id
	r.mu.Lock()
	defer r.mu.Unlock()
	r.greetings = append(r.greetings, &clone)
	return id, nil
}

func (r *Repository) Find(_ context.Context, query ports.Query) ([]*domain.Greeting, error) {
	limit := query.EffectiveLimit()
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Greeting, 0, min(limit, len(r.greetings)))
	for _, g := range r.greetings {
		if len(list) == limit {
			break
		}
		if query.MinTimestamp != nil && g.Timestamp.Before(*query.MinTimestamp) {
			continue
		}
		clone := *g
		list = append(list, &clone)
	}
	return list, nil
}

// Len reports the number of stored greetings.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.greetings)
}

// Reset drops every stored greeting.
func (r *Repository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.greetings = nil
}
