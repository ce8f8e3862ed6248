package ports

import (
	"context"
	"errors"
	"time"

	"github.com/Apurer/go-gin-greeter-api/internal/domains/greetings/domain"
)

// ErrStore wraps failures reported by the persistence layer.
var ErrStore = errors.New("greeting store error")

// Query selects stored greetings.
type Query struct {
	// MinTimestamp is an inclusive lower bound; nil means unbounded.
	MinTimestamp *time.Time
	// Limit caps the result size; zero or negative means domain.MaxListResults.
	Limit int
}

// EffectiveLimit resolves the cap applied to a query.
func (q Query) EffectiveLimit() int {
	if q.Limit <= 0 || q.Limit > domain.MaxListResults {
		return domain.MaxListResults
	}
	return q.Limit
}

// Repository persists greetings. Insert never sends greeting.ID; the store
// assigns the identifier and returns it in canonical string form.
type Repository interface {
	Insert(ctx context.Context, greeting *domain.Greeting) (string, error)
	Find(ctx context.Context, query Query) ([]*domain.Greeting, error)
}
