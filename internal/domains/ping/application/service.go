package application

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"github.com/Apurer/go-gin-greeter-api/internal/domains/ping/ports"
	"github.com/Apurer/go-gin-greeter-api/internal/shared/validation"
)

// Pong is the fixed liveness message.
const Pong = "pong"

// ErrInvalidPayload is returned when an echo body is not a JSON document.
var ErrInvalidPayload = errors.New("invalid ping payload")

// Service answers liveness probes. It never touches the store.
type Service struct{}

// NewService returns the stateless ping service.
func NewService() *Service {
	return &Service{}
}

// Echo returns the payload unchanged alongside the pong message.
func (s *Service) Echo(_ context.Context, payload json.RawMessage) (*ports.Reply, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || !json.Valid(trimmed) {
		return nil, &validation.Error{
			Violations: []validation.Violation{{
				Field:      "body",
				Constraint: validation.ConstraintType,
				Message:    "must be a JSON document",
			}},
			Cause: ErrInvalidPayload,
		}
	}
	data := make(json.RawMessage, len(trimmed))
	copy(data, trimmed)
	return &ports.Reply{Message: Pong, Data: data}, nil
}

// Status returns the bare pong message.
func (s *Service) Status(context.Context) (*ports.Reply, error) {
	return &ports.Reply{Message: Pong}, nil
}

var _ ports.Service = (*Service)(nil)
