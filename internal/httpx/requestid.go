// Package httpx holds small HTTP plumbing shared across handlers: request
// identifiers and request logging.
package httpx

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader is the response header carrying the per-request id.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestID assigns every request a fresh id, exposes it on the response and
// attaches it to the request context. Inbound ids are honored so callers can
// correlate across services.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Writer.Header().Set(RequestIDHeader, id)
		c.Request = c.Request.WithContext(
			context.WithValue(c.Request.Context(), requestIDKey{}, id))

		c.Next()
	}
}

// RequestIDFromContext returns the request id attached by RequestID, or the
// empty string.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
