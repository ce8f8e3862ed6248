package greeterserver

import (
	"encoding/json"
)

// PingResponse - liveness answer. Data is present only for echoes.
type PingResponse struct {
	Message string `json:"message"`

	Data json.RawMessage `json:"data,omitempty"`
}
