package middleware

import (
	"context"

	"github.com/currybox/currybox/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const headerUserID = "X-User-ID"

// RequestContext tags every request with a request id and lifts the shopper
// identity headers into the context. A missing session id is generated and
// echoed back so anonymous shoppers get a stable identity on first contact.
func RequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		requestID := c.GetHeader(types.HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx = context.WithValue(ctx, types.CtxRequestID, requestID)
		c.Header(types.HeaderRequestID, requestID)

		sessionID := c.GetHeader(types.HeaderSessionID)
		if sessionID == "" {
			sessionID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SESSION)
		}
		ctx = types.SetSessionID(ctx, sessionID)
		c.Header(types.HeaderSessionID, sessionID)

		if userID := c.GetHeader(headerUserID); userID != "" {
			ctx = types.SetUserID(ctx, userID)
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
