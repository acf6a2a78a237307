// Package response implements the wire envelope: success bodies wrap their
// payload under a named key (result/user/tweet/tweets/filename), failures
// are {"error": "<message>"} with a status in {400, 401, 403, 404, 500}.
package response

import (
	"github.com/gin-gonic/gin"
)

// OK writes a success body with the payload wrapped under key.
func OK(c *gin.Context, status int, key string, payload any) {
	c.JSON(status, gin.H{key: payload})
}

// Error writes a failure body with a fixed message.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
