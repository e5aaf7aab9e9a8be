package middleware

import (
	"net/http"

	"github.com/currybox/currybox/internal/types"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware handles cross-origin requests from the storefront
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers",
			"Content-Type, Authorization, "+types.HeaderRequestID+", "+types.HeaderSessionID+", "+headerUserID)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Expose-Headers", types.HeaderRequestID+", "+types.HeaderSessionID)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
