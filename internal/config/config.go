// Package config loads the process configuration from the environment once at
// startup. The resulting Config is immutable and handed to the components
// that need it; nothing in the process mutates configuration after Load.
package config

import (
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
)

// Config is the full configuration surface of the API process.
type Config struct {
	// Identity provider settings.
	Auth0Domain string `env:"AUTH0_DOMAIN,required"`
	APIAudience string `env:"API_AUDIENCE,required"`

	// Management API client credentials.
	ClientID           string `env:"COFFEE_SERVER_CLIENT_ID,required"`
	ClientSecret       string `env:"COFFEE_SERVER_CLIENT_SECRET,required"`
	ManagementAudience string `env:"MANAGEMENT_API_AUDIENCE,required"`
	BaristaRoleID      string `env:"BARISTA_ROLE_ID,required"`

	// HTTP surface.
	FrontendOrigin string `env:"FRONTEND_APP_URL,required"`
	HTTPAddr       string `env:"HTTP_ADDR,default=:8080"`

	// Storage and caching.
	DatabasePath string        `env:"DATABASE_PATH,default=coffeeshop.db"`
	JWKSCacheTTL time.Duration `env:"JWKS_CACHE_TTL,default=15m"`
}

// Load decodes the configuration from the environment. It fails if any
// required variable is missing so that misconfiguration is caught at startup
// rather than on the first request.
func Load() (Config, error) {
	var cfg Config
	if err := envdecode.StrictDecode(&cfg); err != nil {
		return Config{}, fmt.Errorf("could not decode configuration from environment: %w", err)
	}
	return cfg, nil
}

// IssuerURL is the expected "iss" claim of access tokens.
func (c Config) IssuerURL() string {
	return "https://" + c.Auth0Domain + "/"
}

// JWKSURL is the provider's published signing key set.
func (c Config) JWKSURL() string {
	return "https://" + c.Auth0Domain + "/.well-known/jwks.json"
}

// TokenURL is the provider's client-credentials token endpoint.
func (c Config) TokenURL() string {
	return "https://" + c.Auth0Domain + "/oauth/token"
}

// ManagementURL is the base URL of the provider's management API.
func (c Config) ManagementURL() string {
	return "https://" + c.Auth0Domain + "/api/v2"
}
