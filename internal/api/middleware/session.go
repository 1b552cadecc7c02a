package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/graniteware/storefront/internal/config"
)

const sessionTokenKey = "session_token"

// SessionMiddleware ensures every request carries an opaque session token,
// issuing a fresh one as an HttpOnly cookie when absent. Idle expiry is
// owned by the session store, not the cookie.
func SessionMiddleware(cfg config.SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cfg.CookieName)
		if err != nil || token == "" {
			token = uuid.New().String()
			c.SetCookie(cfg.CookieName, token, 0, "/", "", false, true)
		}

		c.Set(sessionTokenKey, token)
		c.Next()
	}
}

// GetSessionToken retrieves the session token from the request context
func GetSessionToken(c *gin.Context) (string, bool) {
	v, ok := c.Get(sessionTokenKey)
	if !ok {
		return "", false
	}
	token, ok := v.(string)
	return token, ok && token != ""
}
