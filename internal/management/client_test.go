package management

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/coffeeshop-api/internal/apierror"
)

func newManagementServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClientForBase(server.URL, server.Client())
}

func Test_Client_ListUsers(t *testing.T) {
	users := `[{"user_id":"auth0|1","email":"a@example.com"},{"user_id":"auth0|2"}]`

	client := newManagementServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/users", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(users))
	})

	got, err := client.ListUsers(context.Background())
	require.NoError(t, err)

	// The provider payload passes through verbatim.
	assert.JSONEq(t, users, string(got))
}

func Test_Client_GetUserRoles(t *testing.T) {
	testCases := []struct {
		name      string
		status    int
		body      string
		wantError error
		wantRoles []Role
	}{
		{
			name:      "roles decoded on 200",
			status:    http.StatusOK,
			body:      `[{"id":"rol_1","name":"Barista"}]`,
			wantRoles: []Role{{ID: "rol_1", Name: "Barista"}},
		},
		{
			name:      "provider 401 surfaces as 422",
			status:    http.StatusUnauthorized,
			wantError: apierror.Unprocessable(),
		},
		{
			name:      "provider 404 surfaces as 404",
			status:    http.StatusNotFound,
			wantError: apierror.NotFound(),
		},
		{
			name:      "any other provider failure surfaces as 422",
			status:    http.StatusBadGateway,
			wantError: apierror.Unprocessable(),
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			client := newManagementServer(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/users/auth0|7/roles", r.URL.Path)
				w.WriteHeader(testCase.status)
				_, _ = w.Write([]byte(testCase.body))
			})

			roles, err := client.GetUserRoles(context.Background(), "auth0|7")

			if testCase.wantError != nil {
				assert.ErrorIs(t, err, testCase.wantError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, testCase.wantRoles, roles)
		})
	}
}

func Test_Client_RoleMutations(t *testing.T) {
	t.Run("add posts the role id", func(t *testing.T) {
		client := newManagementServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/users/auth0|7/roles", r.URL.Path)

			var payload map[string][]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, []string{"rol_barista"}, payload["roles"])

			w.WriteHeader(http.StatusNoContent)
		})

		assert.NoError(t, client.AddRole(context.Background(), "auth0|7", "rol_barista"))
	})

	t.Run("remove deletes the role id", func(t *testing.T) {
		client := newManagementServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			w.WriteHeader(http.StatusOK)
		})

		assert.NoError(t, client.RemoveRole(context.Background(), "auth0|7", "rol_barista"))
	})

	t.Run("provider failure surfaces as 422", func(t *testing.T) {
		client := newManagementServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		})

		assert.ErrorIs(t, client.AddRole(context.Background(), "auth0|7", "rol_barista"),
			apierror.Unprocessable())
	})
}

func Test_RolesContain(t *testing.T) {
	roles := []Role{{ID: "rol_1", Name: "Barista"}, {ID: "rol_2", Name: "Manager"}}

	assert.True(t, RolesContain(roles, "barista"))
	assert.True(t, RolesContain(roles, "MANAGER"))
	assert.False(t, RolesContain(roles, "owner"))
	assert.False(t, RolesContain(nil, "barista"))
}
