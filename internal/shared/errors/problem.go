// Package errors provides RFC 7807 Problem Details for HTTP APIs.
package errors

import (
	"fmt"
	"net/http"

	"github.com/Apurer/go-gin-greeter-api/internal/shared/validation"
)

// ProblemDetail represents an RFC 7807 Problem Details response.
// See: https://www.rfc-editor.org/rfc/rfc7807
type ProblemDetail struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	// Extensions holds additional problem-specific properties.
	Extensions map[string]any `json:"extensions,omitempty"`
}

// Error implements the error interface.
func (p ProblemDetail) Error() string {
	if p.Detail != "" {
		return fmt.Sprintf("%s: %s", p.Title, p.Detail)
	}
	return p.Title
}

// WithDetail returns a copy with the given detail message.
func (p ProblemDetail) WithDetail(detail string) ProblemDetail {
	p.Detail = detail
	return p
}

// WithInstance returns a copy with the given instance URI.
func (p ProblemDetail) WithInstance(instance string) ProblemDetail {
	p.Instance = instance
	return p
}

// WithExtension returns a copy with an additional extension property. The
// extension map is copied so templates are never mutated.
func (p ProblemDetail) WithExtension(key string, value any) ProblemDetail {
	ext := make(map[string]any, len(p.Extensions)+1)
	for k, v := range p.Extensions {
		ext[k] = v
	}
	ext[key] = value
	p.Extensions = ext
	return p
}

// Problem types as URI references.
const (
	TypeValidation = "/problems/validation-error"
	TypeNotFound   = "/problems/not-found"
	TypeBadRequest = "/problems/bad-request"
	TypeStore      = "/problems/store-unavailable"
	TypeIntegrity  = "/problems/data-integrity"
	TypeInternal   = "/problems/internal-error"
)

var (
	// ErrNotFound indicates no route matched the request.
	ErrNotFound = ProblemDetail{
		Type:   TypeNotFound,
		Title:  "Resource Not Found",
		Status: http.StatusNotFound,
	}

	// ErrValidation indicates the body or query failed schema constraints.
	ErrValidation = ProblemDetail{
		Type:   TypeValidation,
		Title:  "Validation Error",
		Status: http.StatusUnprocessableEntity,
	}

	// ErrBadRequest indicates the request was malformed.
	ErrBadRequest = ProblemDetail{
		Type:   TypeBadRequest,
		Title:  "Bad Request",
		Status: http.StatusBadRequest,
	}

	// ErrStoreUnavailable indicates the greeting store failed.
	ErrStoreUnavailable = ProblemDetail{
		Type:   TypeStore,
		Title:  "Store Error",
		Status: http.StatusInternalServerError,
	}

	// ErrIntegrity indicates a stored record could not be projected.
	ErrIntegrity = ProblemDetail{
		Type:   TypeIntegrity,
		Title:  "Data Integrity Error",
		Status: http.StatusInternalServerError,
	}

	// ErrInternal indicates an unexpected server error.
	ErrInternal = ProblemDetail{
		Type:   TypeInternal,
		Title:  "Internal Server Error",
		Status: http.StatusInternalServerError,
	}
)

// NewValidationProblem creates a validation problem listing every violation.
func NewValidationProblem(violations []validation.Violation) ProblemDetail {
	if violations == nil {
		violations = []validation.Violation{}
	}
	return ErrValidation.
		WithDetail(fmt.Sprintf("%d field constraint(s) violated", len(violations))).
		WithExtension("violations", violations)
}

// NewRouteNotFoundProblem describes an unmatched method and path.
func NewRouteNotFoundProblem(method, path string) ProblemDetail {
	return ErrNotFound.
		WithDetail(fmt.Sprintf("no route for %s %s", method, path)).
		WithExtension("method", method)
}
