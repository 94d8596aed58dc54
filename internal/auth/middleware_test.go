package auth

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/coffeeshop-api/internal/apierror"
)

type stubValidator struct {
	claims *Claims
	err    error
}

func (s *stubValidator) ValidateToken(context.Context, string) (*Claims, error) {
	return s.claims, s.err
}

func newGuardedRouter(validator TokenValidator, permission string, handlerRan *bool) *gin.Engine {
	gin.SetMode(gin.TestMode)

	log := logrus.New()
	log.SetOutput(io.Discard)

	router := gin.New()
	router.Use(apierror.Translator(log))
	router.GET("/guarded",
		NewMiddleware(validator).RequirePermission(permission),
		func(c *gin.Context) {
			*handlerRan = true
			claims, ok := ClaimsFromContext(c.Request.Context())
			if !ok {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false})
				return
			}
			c.JSON(http.StatusOK, gin.H{"success": true, "subject": claims.Subject})
		})

	return router
}

func Test_RequirePermission(t *testing.T) {
	validClaims := &Claims{Subject: "user", Permissions: []string{"get:drinks-detail"}}

	testCases := []struct {
		name        string
		header      string
		validator   TokenValidator
		permission  string
		wantStatus  int
		wantMessage string
		wantHandler bool
	}{
		{
			name:        "missing header never reaches the validator or handler",
			validator:   &stubValidator{claims: validClaims},
			permission:  "get:drinks-detail",
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Authorization header is expected",
		},
		{
			name:        "invalid token aborts with 401",
			header:      "Bearer bad-token",
			validator:   &stubValidator{err: ErrTokenExpired},
			permission:  "get:drinks-detail",
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "token is expired",
		},
		{
			name:        "missing permission aborts with 403",
			header:      "Bearer good-token",
			validator:   &stubValidator{claims: validClaims},
			permission:  "delete:drinks",
			wantStatus:  http.StatusForbidden,
			wantMessage: "You do not have needed permissions to complete this action",
		},
		{
			name:        "token without permissions claim aborts with 400",
			header:      "Bearer good-token",
			validator:   &stubValidator{claims: &Claims{Subject: "user"}},
			permission:  "get:drinks-detail",
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Access token not in a valid format",
		},
		{
			name:        "granted permission invokes the handler with claims attached",
			header:      "Bearer good-token",
			validator:   &stubValidator{claims: validClaims},
			permission:  "get:drinks-detail",
			wantStatus:  http.StatusOK,
			wantHandler: true,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			handlerRan := false
			router := newGuardedRouter(testCase.validator, testCase.permission, &handlerRan)

			request := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			if testCase.header != "" {
				request.Header.Set("Authorization", testCase.header)
			}

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, request)

			assert.Equal(t, testCase.wantStatus, recorder.Code)
			assert.Equal(t, testCase.wantHandler, handlerRan)

			var body map[string]any
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

			if testCase.wantHandler {
				assert.Equal(t, true, body["success"])
				assert.Equal(t, "user", body["subject"])
				return
			}

			assert.Equal(t, false, body["success"])
			assert.EqualValues(t, testCase.wantStatus, body["error"])
			assert.Equal(t, testCase.wantMessage, body["message"])
		})
	}
}
