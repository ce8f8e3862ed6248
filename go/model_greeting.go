package greeterserver

import (
	"time"
)

// Greeting - A stored greeting as returned by the list endpoint.
type Greeting struct {
	Name string `json:"name"`

	Timestamp time.Time `json:"timestamp"`
}
