package auth

import (
	"net/http"

	"github.com/example/coffeeshop-api/internal/apierror"
)

// Typed authentication and authorization failures. Every failure in the token
// pipeline collapses to one of these; no partial trust is ever granted.
var (
	// ErrHeaderMissing is returned when no Authorization header is present.
	ErrHeaderMissing = apierror.New(http.StatusUnauthorized,
		apierror.CodeAuthHeaderMissing, "Authorization header is expected")

	// ErrHeaderNotBearer is returned when the header scheme is not Bearer.
	ErrHeaderNotBearer = apierror.New(http.StatusUnauthorized,
		apierror.CodeInvalidHeader, "Authorization header must start with Bearer")

	// ErrHeaderNoToken is returned when the header has a scheme but no token.
	ErrHeaderNoToken = apierror.New(http.StatusUnauthorized,
		apierror.CodeInvalidHeader, "Token not found")

	// ErrHeaderTooManyParts is returned when the header has trailing segments
	// after the token.
	ErrHeaderTooManyParts = apierror.New(http.StatusUnauthorized,
		apierror.CodeInvalidHeader, "Authorization header must be Bearer token")

	// ErrKeyNotFound is returned when no signing key matches the token's
	// key-id hint, including when the key set cannot be fetched at all.
	ErrKeyNotFound = apierror.New(http.StatusUnauthorized,
		apierror.CodeInvalidHeader, "Unable to find appropriate key")

	// ErrTokenUnparsable is the catch-all for tokens that fail to parse or
	// whose signature does not verify.
	ErrTokenUnparsable = apierror.New(http.StatusUnauthorized,
		apierror.CodeInvalidHeader, "Unable to parse authentication token.")

	// ErrTokenExpired is returned for tokens past their expiry.
	ErrTokenExpired = apierror.New(http.StatusUnauthorized,
		apierror.CodeTokenExpired, "token is expired")

	// ErrInvalidClaims is returned for audience or issuer mismatches.
	ErrInvalidClaims = apierror.New(http.StatusUnauthorized,
		apierror.CodeInvalidClaims, "incorrect claims, please check the audience and issuer")

	// ErrMalformedToken is returned when a verified token carries no
	// permissions claim at all.
	ErrMalformedToken = apierror.New(http.StatusBadRequest,
		apierror.CodeBadRequest, "Access token not in a valid format")

	// ErrPermissionDenied is returned when the permissions claim does not
	// contain the required permission.
	ErrPermissionDenied = apierror.New(http.StatusForbidden,
		apierror.CodeUnauthorized, "You do not have needed permissions to complete this action")
)
