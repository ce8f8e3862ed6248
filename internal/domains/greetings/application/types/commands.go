package types

import "time"

// CreateGreetingInput carries the say-hello fields after wire-level type coercion.
// Field constraints are enforced by the application service.
type CreateGreetingInput struct {
	FirstName string
	LastName  string
	Age       int
}

// CreateGreetingResult acknowledges a stored greeting.
type CreateGreetingResult struct {
	Message string
}

// ListGreetingsInput bounds a list query. A nil MinDate lists everything up to the cap.
type ListGreetingsInput struct {
	MinDate *time.Time
}
