package middleware

import (
	ierr "github.com/currybox/currybox/internal/errors"
	"github.com/currybox/currybox/internal/logger"
	"github.com/currybox/currybox/internal/types"
	"github.com/gin-gonic/gin"
)

// ErrorHandler converts errors attached by handlers into the standard wire
// format, mapping the sentinel marks to HTTP status codes
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := ierr.HTTPStatusFromErr(err)

		if status >= 500 {
			logger.L.Errorw("request failed",
				"status", status,
				"path", c.Request.URL.Path,
				"request_id", types.GetRequestID(c.Request.Context()),
				"error", err,
			)
		}

		c.JSON(status, ierr.NewErrorResponse(err))
	}
}
