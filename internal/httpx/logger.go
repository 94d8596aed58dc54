package httpx

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RequestLogger logs one structured line per completed request.
func RequestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		entry := log.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency":    time.Since(start).String(),
			"request_id": RequestIDFromContext(c.Request.Context()),
		})

		if len(c.Errors) > 0 {
			entry = entry.WithField("error", c.Errors[0].Err.Error())
		}

		entry.Info("request completed")
	}
}
