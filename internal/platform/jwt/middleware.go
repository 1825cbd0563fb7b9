package jwtmw

import (
	"strings"

	"github.com/gin-gonic/gin"

	"fitness_backend/internal/api"
)

const (
	// ContextUserID is the gin context key holding the authenticated user id.
	ContextUserID = "userID"
	// SessionCookie carries the access token for browser clients.
	SessionCookie = "session"
)

// TokenValidator verifies an access token and returns its user id.
type TokenValidator interface {
	ValidateToken(token string) (string, error)
}

// AuthRequired authenticates the request from the Authorization header or
// the session cookie. Failures abort with 401 before any handler runs.
func AuthRequired(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := tokenFromRequest(c)
		if tokenStr == "" {
			api.AbortUnauthorized(c)
			return
		}

		userID, err := tokens.ValidateToken(tokenStr)
		if err != nil {
			api.AbortUnauthorized(c)
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// UserID returns the id stored by AuthRequired, or "" outside an authenticated route.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

// Bearer header wins over the cookie.
func tokenFromRequest(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}
