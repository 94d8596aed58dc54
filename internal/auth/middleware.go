package auth

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// contextKey is the unexported key type under which verified claims are
// stored in the request context.
type contextKey struct{}

// TokenValidator verifies a raw bearer token and returns its decoded claims.
// *Validator is the production implementation.
type TokenValidator interface {
	ValidateToken(ctx context.Context, raw string) (*Claims, error)
}

// Middleware guards routes with a required permission. Build one per process
// and mount RequirePermission per route.
type Middleware struct {
	validator TokenValidator
	tracer    trace.Tracer
}

// NewMiddleware builds a Middleware around the given validator.
func NewMiddleware(validator TokenValidator) *Middleware {
	return &Middleware{
		validator: validator,
		tracer:    otel.Tracer("github.com/example/coffeeshop-api/internal/auth"),
	}
}

// RequirePermission returns a gin middleware that extracts the bearer token,
// verifies it and checks the required permission, in that order, before the
// wrapped handler runs. The empty permission requires a valid token with a
// permissions claim but no particular entry in it. On success the decoded
// claims are attached to the request context; on any failure the request is
// aborted with the typed error and the handler is never invoked.
func (m *Middleware) RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := m.tracer.Start(c.Request.Context(), "auth.check",
			trace.WithAttributes(attribute.String("auth.permission", permission)))
		defer span.End()

		token, err := AuthHeaderTokenExtractor(c.Request)
		if err != nil {
			abortWithError(c, span, err)
			return
		}

		claims, err := m.validator.ValidateToken(ctx, token)
		if err != nil {
			abortWithError(c, span, err)
			return
		}

		if err := CheckPermissions(permission, claims); err != nil {
			abortWithError(c, span, err)
			return
		}

		c.Request = c.Request.WithContext(ContextWithClaims(c.Request.Context(), claims))
		c.Next()
	}
}

func abortWithError(c *gin.Context, span trace.Span, err error) {
	span.RecordError(err)
	_ = c.Error(err)
	c.Abort()
}

// ContextWithClaims returns a copy of ctx carrying the verified claims.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, contextKey{}, claims)
}

// ClaimsFromContext returns the verified claims attached by
// RequirePermission, if any.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(contextKey{}).(*Claims)
	return claims, ok
}
