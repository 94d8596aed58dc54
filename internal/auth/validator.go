package auth

import (
	"context"
	"errors"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jws"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Validator verifies bearer tokens against the provider's signing keys. Only
// RS256 tokens are accepted; issuer, audience and expiry are checked on every
// token.
type Validator struct {
	keyProvider      KeyProvider
	issuerURL        string
	audience         string
	allowedClockSkew time.Duration
}

// Option configures optional aspects of a Validator.
type Option func(*Validator)

// WithAllowedClockSkew sets the tolerance applied to time-based claims.
func WithAllowedClockSkew(d time.Duration) Option {
	return func(v *Validator) {
		v.allowedClockSkew = d
	}
}

// NewValidator sets up a new Validator. The key provider, issuer URL and
// audience are all required.
func NewValidator(keyProvider KeyProvider, issuerURL, audience string, opts ...Option) (*Validator, error) {
	if keyProvider == nil {
		return nil, errors.New("key provider is required but was nil")
	}
	if issuerURL == "" {
		return nil, errors.New("issuer url is required but was empty")
	}
	if audience == "" {
		return nil, errors.New("audience is required but was empty")
	}

	v := &Validator{
		keyProvider: keyProvider,
		issuerURL:   issuerURL,
		audience:    audience,
	}

	for _, opt := range opts {
		opt(v)
	}

	return v, nil
}

// ValidateToken verifies the raw token and returns its decoded claims. All
// failures collapse to one of the typed errors in this package; callers never
// see partial results.
func (v *Validator) ValidateToken(ctx context.Context, raw string) (*Claims, error) {
	key, err := v.resolveKey(ctx, raw)
	if err != nil {
		return nil, err
	}

	token, err := jwt.Parse([]byte(raw),
		jwt.WithKey(jwa.RS256, key),
		jwt.WithValidate(false),
	)
	if err != nil {
		return nil, ErrTokenUnparsable
	}

	err = jwt.Validate(token,
		jwt.WithIssuer(v.issuerURL),
		jwt.WithAudience(v.audience),
		jwt.WithAcceptableSkew(v.allowedClockSkew),
	)
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired()):
		return nil, ErrTokenExpired
	case errors.Is(err, jwt.ErrInvalidIssuer()), errors.Is(err, jwt.ErrInvalidAudience()):
		return nil, ErrInvalidClaims
	default:
		return nil, ErrTokenUnparsable
	}

	return &Claims{
		Subject:     token.Subject(),
		Permissions: permissionsFromToken(token),
	}, nil
}

// resolveKey reads the unverified token header for its key-id hint and looks
// up the matching key in the provider's key set.
func (v *Validator) resolveKey(ctx context.Context, raw string) (jwk.Key, error) {
	msg, err := jws.Parse([]byte(raw))
	if err != nil || len(msg.Signatures()) == 0 {
		return nil, ErrTokenUnparsable
	}

	headers := msg.Signatures()[0].ProtectedHeaders()
	if headers.Algorithm() != jwa.RS256 {
		return nil, ErrTokenUnparsable
	}

	set, err := v.keyProvider.KeyFunc(ctx)
	if err != nil {
		return nil, ErrKeyNotFound
	}

	key, ok := set.LookupKeyID(headers.KeyID())
	if !ok {
		return nil, ErrKeyNotFound
	}

	return key, nil
}

// permissionsFromToken extracts the permissions claim. nil means the claim
// was absent or not a list of strings; an empty non-nil slice means it was
// present but empty.
func permissionsFromToken(token jwt.Token) []string {
	raw, ok := token.Get("permissions")
	if !ok {
		return nil
	}

	items, ok := raw.([]interface{})
	if !ok {
		return nil
	}

	permissions := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil
		}
		permissions = append(permissions, s)
	}

	return permissions
}
