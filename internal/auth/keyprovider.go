package auth

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
)

// KeyProvider supplies the identity provider's current signing key set.
type KeyProvider interface {
	KeyFunc(ctx context.Context) (jwk.Set, error)
}

// JWKSProvider fetches the key set from the configured JWKS URL on every
// call. Most callers will want the CachingJWKSProvider instead, which avoids
// a network round trip per verification and the provider's rate limits.
type JWKSProvider struct {
	JWKSURL string
	Client  *http.Client
}

// ProviderOption configures a JWKSProvider.
type ProviderOption func(*JWKSProvider)

// WithCustomClient sets the HTTP client used to fetch the key set.
func WithCustomClient(c *http.Client) ProviderOption {
	return func(p *JWKSProvider) {
		p.Client = c
	}
}

// NewJWKSProvider builds and returns a new *JWKSProvider.
func NewJWKSProvider(jwksURL string, opts ...ProviderOption) *JWKSProvider {
	p := &JWKSProvider{
		JWKSURL: jwksURL,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// KeyFunc fetches and parses the published key set.
func (p *JWKSProvider) KeyFunc(ctx context.Context) (jwk.Set, error) {
	return jwk.Fetch(ctx, p.JWKSURL, jwk.WithHTTPClient(p.Client))
}

// CachingJWKSProvider wraps a JWKSProvider and caches the fetched key set for
// a fixed TTL. A fetch failure is not cached; the next verification attempt
// will retry the provider.
type CachingJWKSProvider struct {
	*JWKSProvider
	CacheTTL time.Duration

	mu        sync.Mutex
	cached    jwk.Set
	expiresAt time.Time
}

// NewCachingJWKSProvider builds and returns a new *CachingJWKSProvider. If
// cacheTTL is zero a default of 1 minute is used.
func NewCachingJWKSProvider(jwksURL string, cacheTTL time.Duration, opts ...ProviderOption) *CachingJWKSProvider {
	if cacheTTL == 0 {
		cacheTTL = 1 * time.Minute
	}

	return &CachingJWKSProvider{
		JWKSProvider: NewJWKSProvider(jwksURL, opts...),
		CacheTTL:     cacheTTL,
	}
}

// KeyFunc returns the cached key set, fetching a fresh one when the cache is
// empty or past its TTL. Concurrent callers during a refresh serialize on the
// mutex so the provider sees a single fetch.
func (c *CachingJWKSProvider) KeyFunc(ctx context.Context) (jwk.Set, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached != nil && time.Now().Before(c.expiresAt) {
		return c.cached, nil
	}

	set, err := c.JWKSProvider.KeyFunc(ctx)
	if err != nil {
		return nil, err
	}

	c.cached = set
	c.expiresAt = time.Now().Add(c.CacheTTL)

	return set, nil
}
