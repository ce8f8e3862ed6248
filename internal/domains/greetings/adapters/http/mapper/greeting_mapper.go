package mapper

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/application/types"
	"github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/domain"
	"github.com/Apurer/go-gin-greeter-api/internal/shared/validation"
)

// SayHelloRequest is the transport-level payload as decoded from JSON. Values
// stay untyped until ToCreateGreetingInput coerces them.
type SayHelloRequest struct {
	FirstName any
	LastName  any
	Age       any
}

// Greeting is the transport-level list item.
type Greeting struct {
	Name      string
	Timestamp time.Time
}

// ToCreateGreetingInput applies wire coercion. Names must be JSON strings; age
// accepts integers, integral floats and numeric strings.
func ToCreateGreetingInput(req SayHelloRequest) (types.CreateGreetingInput, error) {
	var c validation.Collector
	first, firstOK := coerceString(&c, domain.FieldFirstName, req.FirstName)
	last, lastOK := coerceString(&c, domain.FieldLastName, req.LastName)
	age, ageOK := coerceInt(&c, domain.FieldAge, req.Age)
	input := types.CreateGreetingInput{FirstName: first, LastName: last, Age: age}
	if c.Err() == nil {
		return input, nil
	}
	// Fields that did coerce still get their domain checks so one response
	// lists every violation.
	coerced := map[string]bool{
		domain.FieldFirstName: firstOK,
		domain.FieldLastName:  lastOK,
		domain.FieldAge:       ageOK,
	}
	domainErr := domain.Request{FirstName: first, LastName: last, Age: age}.Validate()
	for _, v := range validation.Violations(domainErr) {
		if coerced[v.Field] {
			c.Add(v.Field, v.Constraint, v.Message)
		}
	}
	return types.CreateGreetingInput{}, c.Err()
}

// ToListGreetingsInput parses the optional min_date query value.
func ToListGreetingsInput(minDate *string) (types.ListGreetingsInput, error) {
	if minDate == nil || strings.TrimSpace(*minDate) == "" {
		return types.ListGreetingsInput{}, nil
	}
	parsed, err := ParseDateTime(*minDate)
	if err != nil {
		return types.ListGreetingsInput{}, validation.New(validation.Violation{
			Field:      domain.FieldMinDate,
			Constraint: validation.ConstraintFormat,
			Message:    err.Error(),
		})
	}
	return types.ListGreetingsInput{MinDate: &parsed}, nil
}

// ISO-8601 layouts accepted for datetimes; values without an offset are UTC.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseDateTime parses an ISO-8601 date or datetime.
func ParseDateTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%q is not a valid ISO-8601 datetime", value)
}

// FromProjection converts a domain projection into the transport representation.
func FromProjection(p domain.Projection) Greeting {
	return Greeting{Name: p.Name, Timestamp: p.Timestamp}
}

// FromProjectionList converts projections preserving order.
func FromProjectionList(list []domain.Projection) []Greeting {
	result := make([]Greeting, 0, len(list))
	for _, p := range list {
		result = append(result, FromProjection(p))
	}
	return result
}

func coerceString(c *validation.Collector, field string, value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		c.Add(field, validation.ConstraintRequired, "field required")
	case string:
		return v, true
	default:
		c.Add(field, validation.ConstraintType, "must be a string")
	}
	return "", false
}

func coerceInt(c *validation.Collector, field string, value any) (int, bool) {
	switch v := value.(type) {
	case nil:
		c.Add(field, validation.ConstraintRequired, "field required")
	case int:
		return v, true
	case int64:
		if n, ok := intFromInt64(v); ok {
			return n, true
		}
		c.Add(field, validation.ConstraintType, "integer out of range")
	case float64:
		if n, ok := intFromFloat(v); ok {
			return n, true
		}
		c.Add(field, validation.ConstraintType, "must be a valid integer")
	case json.Number:
		if n, err := v.Int64(); err == nil {
			if i, ok := intFromInt64(n); ok {
				return i, true
			}
		} else if f, err := v.Float64(); err == nil {
			if i, ok := intFromFloat(f); ok {
				return i, true
			}
		}
		c.Add(field, validation.ConstraintType, "must be a valid integer")
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err == nil {
			if i, ok := intFromInt64(n); ok {
				return i, true
			}
		}
		c.Add(field, validation.ConstraintType, "must be a valid integer, unable to parse string as an integer")
	default:
		c.Add(field, validation.ConstraintType, "must be a valid integer")
	}
	return 0, false
}

func intFromFloat(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt32 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func intFromInt64(n int64) (int, bool) {
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, false
	}
	return int(n), true
}
