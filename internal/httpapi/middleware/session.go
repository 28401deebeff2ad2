package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cinelog/internal/httpapi/dto"
	"cinelog/internal/httpapi/validation"
	"cinelog/internal/session"
)

// SessionCookie is the browser cookie carrying the opaque session token.
const SessionCookie = "cinelog_session"

// Context keys set by Resolve.
const (
	UsernameKey     = "username"
	SessionTokenKey = "sessionToken"
)

// Resolve looks up the session identified by the request cookie and attaches
// the username to the request context. A missing, expired or unreadable
// session leaves the request anonymous; protected routes add RequireAuth on
// top. Every resolved hit refreshes the cookie max-age in step with the store
// TTL, giving rolling expiry.
func Resolve(store session.Store, maxAge int, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.Next()
			return
		}

		username, err := store.Get(c.Request.Context(), token)
		if err != nil {
			c.Next()
			return
		}

		c.Set(UsernameKey, username)
		c.Set(SessionTokenKey, token)
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, token, maxAge, "/", "", secure, true)
		c.Next()
	}
}

// RequireAuth gates an endpoint on a resolved session identity.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(UsernameKey) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewError(
				http.StatusUnauthorized, "Unauthorized",
				validation.FieldError{Field: "auth", Code: "NO_SESSION", Message: "You must be logged in"},
			))
			return
		}
		c.Next()
	}
}
