package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"twitter-clone-backend/pkg/helpers"
	"twitter-clone-backend/pkg/response"
)

const CtxUserIDKey = "userID"

// Auth is the authorization guard gating every mutating endpoint. It reads
// the bearer credential, verifies signature and expiry, and injects the
// acting user id into the Gin context.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.Error(c, http.StatusUnauthorized, "You must be logged in")
			c.Abort()
			return
		}
		claims, err := jwt.ParseToken(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}
