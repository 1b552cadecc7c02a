package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/graniteware/storefront/internal/repository"
	"github.com/graniteware/storefront/internal/session"
)

const currentUserIDKey = "current_user_id"

// RequireUser guards routes that need an authenticated principal bound to
// the session. The binding is established at login and vanishes with the
// session's idle expiry.
func RequireUser(store session.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := GetSessionToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		userID, found, err := store.UserID(c.Request.Context(), token)
		if err != nil {
			logger.Error("Failed to read session user", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if !found {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Set(currentUserIDKey, userID)
		c.Next()
	}
}

// RequireAdmin guards admin routes. Must run after RequireUser.
func RequireAdmin(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetCurrentUserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		user, err := repos.User.GetByID(c.Request.Context(), userID)
		if err != nil {
			logger.Error("Failed to load user for admin check", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}

		c.Next()
	}
}

// GetCurrentUserID retrieves the authenticated user's id from the request context
func GetCurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(currentUserIDKey)
	if !ok {
		return uuid.Nil, false
	}
	userID, ok := v.(uuid.UUID)
	return userID, ok
}
