package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/Apurer/go-gin-greeter-api/internal/shared/validation"
)

const (
	// MinimumAge is the youngest age accepted by the greeting log.
	MinimumAge = 18
	// MaxListResults caps the number of records a single list call returns.
	MaxListResults = 1000
)

// Field names as they appear on the wire and in stored documents.
const (
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldAge       = "age"
	FieldTimestamp = "timestamp"
	FieldMinDate   = "min_date"
)

// ErrIntegrity signals a stored record that cannot be projected.
var ErrIntegrity = errors.New("greeting record integrity violation")

// Request is a say-hello request that satisfied every field constraint.
type Request struct {
	FirstName string
	LastName  string
	Age       int
}

// NewRequest validates the supplied fields and reports every violation at once.
func NewRequest(firstName, lastName string, age int) (Request, error) {
	req := Request{FirstName: firstName, LastName: lastName, Age: age}
	if err := req.Validate(); err != nil {
		return Request{}, err
	}
	return req, nil
}

// Validate re-applies the request invariants. Names are checked as given;
// whitespace counts as content.
func (r Request) Validate() error {
	var c validation.Collector
	if r.FirstName == "" {
		c.Add(FieldFirstName, validation.ConstraintNonEmpty, "must not be empty")
	}
	if r.LastName == "" {
		c.Add(FieldLastName, validation.ConstraintNonEmpty, "must not be empty")
	}
	if r.Age < MinimumAge {
		c.Add(FieldAge, validation.ConstraintMinimum, fmt.Sprintf("must be greater than or equal to %d", MinimumAge))
	}
	return c.Err()
}

// FullName joins first and last name with a single space.
func (r Request) FullName() string {
	return fullName(r.FirstName, r.LastName)
}

// Greeting is a persisted say-hello record. ID stays empty until the store assigns one.
type Greeting struct {
	ID        string
	FirstName string
	LastName  string
	Age       int
	Timestamp time.Time
}

// NewGreeting stamps a validated request with its write time.
func NewGreeting(req Request, at time.Time) *Greeting {
	return &Greeting{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Age:       req.Age,
		Timestamp: at,
	}
}

// Projection is the outbound view of a greeting.
type Projection struct {
	Name      string
	Timestamp time.Time
}

// Project derives the outbound view. A missing timestamp is an integrity failure.
func Project(g *Greeting) (Projection, error) {
	if g == nil {
		return Projection{}, fmt.Errorf("%w: record is nil", ErrIntegrity)
	}
	if g.Timestamp.IsZero() {
		if g.ID != "" {
			return Projection{}, fmt.Errorf("%w: record %s has no timestamp", ErrIntegrity, g.ID)
		}
		return Projection{}, fmt.Errorf("%w: record has no timestamp", ErrIntegrity)
	}
	return Projection{
		Name:      fullName(g.FirstName, g.LastName),
		Timestamp: g.Timestamp,
	}, nil
}

// ProjectAll maps records in order, failing on the first broken record.
func ProjectAll(records []*Greeting) ([]Projection, error) {
	out := make([]Projection, 0, len(records))
	for _, rec := range records {
		p, err := Project(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Message is the acknowledgement returned for a created greeting.
func Message(req Request) string {
	return "Hello, " + req.FullName()
}

func fullName(first, last string) string {
	return first + " " + last
}
