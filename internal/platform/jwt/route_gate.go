package jwtmw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	SignInPath    = "/auth/signin"
	DashboardPath = "/dashboard"
)

// RouteGate redirects browser navigations based on the session cookie.
// Signed-out visitors of app pages go to the sign-in page and signed-in
// visitors of /auth pages go to the dashboard. It must only be mounted on
// page routes; /api requests pass straight through.
func RouteGate(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path == "/api" || strings.HasPrefix(path, "/api/") {
			c.Next()
			return
		}

		isAuthPage := strings.HasPrefix(path, "/auth")
		signedIn := false
		if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
			_, err := tokens.ValidateToken(cookie)
			signedIn = err == nil
		}

		switch {
		case signedIn && isAuthPage:
			c.Redirect(http.StatusFound, DashboardPath)
			c.Abort()
		case !signedIn && !isAuthPage:
			c.Redirect(http.StatusFound, SignInPath)
			c.Abort()
		default:
			c.Next()
		}
	}
}
