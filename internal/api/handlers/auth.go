package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/graniteware/storefront/internal/api/middleware"
	"github.com/graniteware/storefront/internal/service"
	"github.com/graniteware/storefront/internal/session"
	"github.com/graniteware/storefront/pkg/errors"
)

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// HandleLogin handles POST /v1/auth/login. A successful login binds the
// user to the current session; the cart accumulated before login stays.
func HandleLogin(auth *service.AuthService, store session.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := middleware.GetSessionToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			if _, ok := err.(*errors.ErrUnauthorized); ok {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
				return
			}
			logger.Error("Failed to authenticate", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		if err := store.SetUserID(c.Request.Context(), token, user.ID); err != nil {
			logger.Error("Failed to bind user to session", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"user_id":   user.ID.String(),
			"full_name": user.FullName,
			"is_admin":  user.IsAdmin,
		})
	}
}

// HandleLogout handles POST /v1/auth/logout. Clearing the session also
// discards the cart.
func HandleLogout(store session.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := middleware.GetSessionToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if err := store.Clear(c.Request.Context(), token); err != nil {
			logger.Error("Failed to clear session", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "logged out"})
	}
}
