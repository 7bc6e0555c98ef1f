package middleware

import (
	"net/http"
	"strings"

	"tsehay_admin/internal/services"
	"tsehay_admin/pkg/utils"

	"github.com/gin-gonic/gin"
)

const (
	// SessionCookieName carries the signed session token.
	SessionCookieName = "tk_admin_session"

	// LoginPath is where unauthenticated dashboard requests are sent.
	LoginPath = "/admin"

	sessionKey = "adminSession"
)

// AuthGate lets a request through only when it carries a live session.
// Browsers are redirected to the login page; API clients get 401.
// Either way the request stops here, so nothing downstream runs.
func AuthGate(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := authService.Authenticate(sessionToken(c))
		if err != nil {
			utils.LogDebug("AuthGate: rejected request", map[string]interface{}{"path": c.Request.URL.Path, "reason": err.Error()})
			if WantsJSON(c) {
				utils.RespondUnauthorized(c, "Valid session required")
				return
			}
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// CurrentSession returns the session set by AuthGate.
func CurrentSession(c *gin.Context) (*services.AdminSession, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	session, ok := v.(*services.AdminSession)
	return session, ok
}

// WantsJSON reports whether the client should get JSON instead of HTML.
func WantsJSON(c *gin.Context) bool {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") || c.ContentType() == gin.MIMEJSON {
		return true
	}
	return c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}

// sessionToken reads the token from the session cookie, falling back to a
// Bearer Authorization header for API clients.
func sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie
	}
	parts := strings.Split(c.GetHeader("Authorization"), " ")
	if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
		return parts[1]
	}
	return ""
}
