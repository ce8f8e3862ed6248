// Package requestid tags every inbound request with a correlation id.
package requestid

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Header carries the correlation id in both directions.
const Header = "X-Request-ID"

const maxInboundLength = 128

type contextKey struct{}

// Middleware reuses a caller supplied id or mints a UUID, echoes it back and
// stores it on the request context.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(Header))
		if id == "" || len(id) > maxInboundLength {
			id = uuid.NewString()
		}
		c.Header(Header, id)
		c.Request = c.Request.WithContext(WithContext(c.Request.Context(), id))
		c.Next()
	}
}

// WithContext returns a copy of ctx carrying id.
func WithContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the id stored on ctx, or "".
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}
