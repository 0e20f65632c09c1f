package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Every response is a JSON object carrying a success flag and a message;
// operation-specific payload fields are merged in at the top level.

func OK(c *gin.Context, message string, payload gin.H) {
	body := gin.H{
		"success": true,
		"message": message,
	}
	for key, value := range payload {
		body[key] = value
	}
	c.JSON(http.StatusOK, body)
}

func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

// FailWithReason adds the error label the auth boundary carries beside the
// message, e.g. "Unauthorized" on every 401.
func FailWithReason(c *gin.Context, status int, message, reason string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
		"error":   reason,
	})
}
