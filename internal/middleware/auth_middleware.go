package middleware

import (
	"github.com/gin-gonic/gin"

	apperrors "focusboard/backend/internal/errors"
	"focusboard/backend/internal/logger"
	"focusboard/backend/internal/model"
	"focusboard/backend/internal/service"
	"focusboard/backend/internal/session"
)

const (
	UserIDContextKey = "userID"
	UserContextKey   = "user"
)

// Auth admits a request only when its session cookie resolves to a user.
func Auth(sessions *service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, apiErr := sessions.Resolve(c.Request.Context(), session.Token(c.Request))
		if apiErr != nil {
			if apiErr.Cause != nil {
				logger.Error("resolve session failed", map[string]any{
					"path":  c.FullPath(),
					"error": apiErr.Cause.Error(),
				})
			}
			writeError(c, apiErr)
			return
		}

		c.Set(UserIDContextKey, user.ID)
		c.Set(UserContextKey, *user)
		c.Next()
	}
}

func UserID(c *gin.Context) string {
	value, ok := c.Get(UserIDContextKey)
	if !ok {
		return ""
	}
	userID, ok := value.(string)
	if !ok {
		return ""
	}
	return userID
}

// CurrentUser returns the user admitted by Auth.
func CurrentUser(c *gin.Context) (model.User, bool) {
	value, ok := c.Get(UserContextKey)
	if !ok {
		return model.User{}, false
	}
	user, ok := value.(model.User)
	return user, ok
}

func writeError(c *gin.Context, apiErr *apperrors.APIError) {
	message := apiErr.Message
	if apiErr.Status >= 500 {
		message = "internal server error"
	}
	c.AbortWithStatusJSON(apiErr.Status, gin.H{
		"error": gin.H{
			"code":    apiErr.Code,
			"message": message,
		},
	})
}
