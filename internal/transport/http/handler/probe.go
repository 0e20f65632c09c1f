package handler

import (
	"github.com/gin-gonic/gin"

	"recipeshare/internal/transport/http/response"
)

// Public answers the unauthenticated sample probe.
func Public(c *gin.Context) {
	response.OK(c, "You can access this", nil)
}

// Private answers the authenticated sample probe; the auth middleware has
// already verified the token by the time it runs.
func Private(c *gin.Context) {
	response.OK(c, "JWT is verified. Welcome to your private page!", nil)
}
