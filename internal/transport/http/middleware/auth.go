package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"recipeshare/internal/model"
	"recipeshare/internal/pkg/jwtutil"
	"recipeshare/internal/repository"
	"recipeshare/internal/transport/http/response"
)

const contextUserKey = "current_user"

// Auth extracts and verifies the bearer token, resolves the embedded user id
// against the store, and injects the live user record into the request
// context. Every failure short-circuits before the handler runs.
func Auth(secret string, userRepo *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)

		claims, err := jwtutil.Verify(secret, token)
		if err != nil {
			switch {
			case errors.Is(err, jwtutil.ErrTokenMissing):
				response.FailWithReason(c, http.StatusUnauthorized, "Authentication token is missing!", "Unauthorized")
			case errors.Is(err, jwtutil.ErrTokenExpired):
				response.FailWithReason(c, http.StatusUnauthorized, "Token has expired!", "Unauthorized")
			case errors.Is(err, jwtutil.ErrTokenMalformed), errors.Is(err, jwtutil.ErrTokenInvalid):
				response.FailWithReason(c, http.StatusUnauthorized, "Invalid token!", "Unauthorized")
			default:
				response.FailWithReason(c, http.StatusInternalServerError, "An error occurred", err.Error())
			}
			c.Abort()
			return
		}

		user, err := userRepo.GetByID(claims.UserID)
		if err != nil {
			response.FailWithReason(c, http.StatusInternalServerError, "An error occurred", err.Error())
			c.Abort()
			return
		}
		if user == nil {
			response.FailWithReason(c, http.StatusUnauthorized, "Invalid or inactive user!", "Unauthorized")
			c.Abort()
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

// CurrentUser returns the user the Auth middleware resolved for this request.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	value, exists := c.Get(contextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*model.User)
	return user, ok
}
