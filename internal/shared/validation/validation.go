// Package validation carries field-level constraint violations across layers.
package validation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation matches every *Error via errors.Is.
var ErrValidation = errors.New("validation failed")

// Constraint names reported in violations.
const (
	ConstraintRequired   = "required"
	ConstraintType       = "type"
	ConstraintNonEmpty   = "non_empty"
	ConstraintMinimum    = "minimum"
	ConstraintFormat     = "format"
	ConstraintIdentifier = "identifier"
)

// Violation describes one failed field constraint.
type Violation struct {
	Field      string `json:"field"`
	Constraint string `json:"constraint"`
	Message    string `json:"message"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// Error aggregates violations. Cause, when set, is reachable through errors.Is/As.
type Error struct {
	Violations []Violation
	Cause      error
}

// New builds an Error from the supplied violations.
func New(violations ...Violation) *Error {
	return &Error{Violations: violations}
}

func (e *Error) Error() string {
	if e == nil || len(e.Violations) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

// Is reports ErrValidation as a match.
func (e *Error) Is(target error) bool {
	return target == ErrValidation
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Collector accumulates violations while a payload is inspected.
type Collector struct {
	violations []Violation
}

// Add records a violation.
func (c *Collector) Add(field, constraint, message string) {
	c.violations = append(c.violations, Violation{Field: field, Constraint: constraint, Message: message})
}

// Merge appends the violations of err when it is a validation error and
// reports whether it was one.
func (c *Collector) Merge(err error) bool {
	var verr *Error
	if !errors.As(err, &verr) {
		return false
	}
	c.violations = append(c.violations, verr.Violations...)
	return true
}

// Err returns nil when nothing was collected.
func (c *Collector) Err() error {
	if len(c.violations) == 0 {
		return nil
	}
	out := make([]Violation, len(c.violations))
	copy(out, c.violations)
	return &Error{Violations: out}
}

// Violations extracts the violations carried by err, if any.
func Violations(err error) []Violation {
	var verr *Error
	if errors.As(err, &verr) {
		return verr.Violations
	}
	return nil
}
