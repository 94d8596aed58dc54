package httpx

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_RequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var seen string
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) {
		seen = RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	t.Run("a fresh id is generated", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

		require.NotEmpty(t, seen)
		assert.Equal(t, seen, recorder.Header().Get(RequestIDHeader))
	})

	t.Run("an inbound id is honored", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set(RequestIDHeader, "req-123")

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)

		assert.Equal(t, "req-123", seen)
		assert.Equal(t, "req-123", recorder.Header().Get(RequestIDHeader))
	})
}

func Test_RequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	log := logrus.New()
	log.SetOutput(io.Discard)

	hook := &capturingHook{}
	log.AddHook(hook)

	router := gin.New()
	router.Use(RequestID(), RequestLogger(log))
	router.GET("/drinks", func(c *gin.Context) { c.Status(http.StatusOK) })

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/drinks", nil))

	require.Len(t, hook.entries, 1)
	entry := hook.entries[0]
	assert.Equal(t, "request completed", entry.Message)
	assert.Equal(t, "GET", entry.Data["method"])
	assert.Equal(t, "/drinks", entry.Data["path"])
	assert.Equal(t, http.StatusOK, entry.Data["status"])
	assert.NotEmpty(t, entry.Data["request_id"])
}

type capturingHook struct {
	entries []*logrus.Entry
}

func (h *capturingHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *capturingHook) Fire(entry *logrus.Entry) error {
	h.entries = append(h.entries, entry)
	return nil
}
