package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CtxRequestIDKey is the context key under which RequestID stores the
// per-request correlation id.
const CtxRequestIDKey = "request_id"

// RequestID injects a unique correlation id into the Gin context for every
// request so log lines from one request can be tied together.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(CtxRequestIDKey, uuid.NewString())
		c.Next()
	}
}
