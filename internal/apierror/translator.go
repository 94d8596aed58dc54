package apierror

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Translator returns a middleware that converts errors recorded on the gin
// context into the JSON error body {success:false, error:<status>,
// message:<text>}. Unclassified errors are logged and reported as a generic
// 500 so that internals are never exposed to clients.
func Translator(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors[0].Err

		var apiErr *Error
		if !errors.As(err, &apiErr) {
			log.WithError(err).Error("unhandled error")
			apiErr = New(http.StatusInternalServerError, CodeInternal, "something went wrong")
		}

		c.JSON(apiErr.Status, gin.H{
			"success": false,
			"error":   apiErr.Status,
			"message": apiErr.Message,
		})
	}
}
