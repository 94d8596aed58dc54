package auth

import (
	"net/http"
	"strings"
)

// TokenExtractor is a function that takes a request as input and returns
// either a bearer token or a typed error describing why the credential could
// not be obtained.
type TokenExtractor func(r *http.Request) (string, error)

// AuthHeaderTokenExtractor extracts the bearer token from the Authorization
// header. The header must be exactly "Bearer <token>"; the scheme comparison
// is case-insensitive.
func AuthHeaderTokenExtractor(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrHeaderMissing
	}

	parts := strings.Fields(authHeader)
	if len(parts) == 0 {
		return "", ErrHeaderMissing
	}
	if !strings.EqualFold(parts[0], "bearer") {
		return "", ErrHeaderNotBearer
	}
	if len(parts) == 1 {
		return "", ErrHeaderNoToken
	}
	if len(parts) > 2 {
		return "", ErrHeaderTooManyParts
	}

	return parts[1], nil
}
