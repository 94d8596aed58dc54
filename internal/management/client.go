// Package management proxies user and role administration to the identity
// provider's management API. The local API never stores users or roles; every
// operation here is a synchronous single-attempt call to the provider.
package management

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/example/coffeeshop-api/internal/apierror"
	"github.com/example/coffeeshop-api/internal/config"
)

// Role is a provider role as returned by the management API.
type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// API is the surface the role handlers depend on.
type API interface {
	ListUsers(ctx context.Context) (json.RawMessage, error)
	GetUserRoles(ctx context.Context, userID string) ([]Role, error)
	AddRole(ctx context.Context, userID, roleID string) error
	RemoveRole(ctx context.Context, userID, roleID string) error
}

// Client talks to the provider's management API using a client-credentials
// token. The token source caches and refreshes the management access token
// across calls.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a management client from the process configuration. The
// returned client holds an auto-refreshing token source bound to ctx.
func NewClient(ctx context.Context, cfg config.Config) *Client {
	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL(),
		EndpointParams: url.Values{
			"audience": {cfg.ManagementAudience},
		},
	}

	return &Client{
		baseURL: cfg.ManagementURL(),
		http:    cc.Client(ctx),
	}
}

// NewClientForBase builds a client against an explicit base URL with the
// given HTTP client. Used by tests and anywhere the token exchange is handled
// externally.
func NewClientForBase(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// ListUsers returns the provider's full user list verbatim.
func (c *Client) ListUsers(ctx context.Context) (json.RawMessage, error) {
	res, err := c.do(ctx, http.MethodGet, "/users", nil)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, apierror.Unprocessable()
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, apierror.Unprocessable()
	}

	return json.RawMessage(body), nil
}

// GetUserRoles returns the roles assigned to a user. A provider 404 maps to a
// local 404; a provider 401 (a stale or rejected management token) and every
// other non-200 map to a local 422.
func (c *Client) GetUserRoles(ctx context.Context, userID string) ([]Role, error) {
	res, err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(userID)+"/roles", nil)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, apierror.NotFound()
	default:
		return nil, apierror.Unprocessable()
	}

	var roles []Role
	if err := json.NewDecoder(res.Body).Decode(&roles); err != nil {
		return nil, apierror.Unprocessable()
	}

	return roles, nil
}

// AddRole assigns roleID to the user.
func (c *Client) AddRole(ctx context.Context, userID, roleID string) error {
	return c.mutateRoles(ctx, http.MethodPost, userID, roleID)
}

// RemoveRole removes roleID from the user.
func (c *Client) RemoveRole(ctx context.Context, userID, roleID string) error {
	return c.mutateRoles(ctx, http.MethodDelete, userID, roleID)
}

func (c *Client) mutateRoles(ctx context.Context, method, userID, roleID string) error {
	payload, err := json.Marshal(map[string][]string{"roles": {roleID}})
	if err != nil {
		return err
	}

	res, err := c.do(ctx, method, "/users/"+url.PathEscape(userID)+"/roles", payload)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusNoContent {
		return apierror.Unprocessable()
	}

	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("could not build management request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, apierror.Unprocessable()
	}

	return res, nil
}

// RolesContain reports whether any role in roles matches name,
// case-insensitively.
func RolesContain(roles []Role, name string) bool {
	for _, r := range roles {
		if strings.EqualFold(r.Name, name) {
			return true
		}
	}
	return false
}
