package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cinelog/internal/httpapi/middleware"
	"cinelog/internal/session"
)

// SessionWriter issues and destroys browser sessions: a random token saved in
// the store and mirrored into an HTTP-only cookie.
type SessionWriter struct {
	store  session.Store
	maxAge int
	secure bool
}

func NewSessionWriter(store session.Store, ttl time.Duration, secure bool) *SessionWriter {
	return &SessionWriter{
		store:  store,
		maxAge: int(ttl.Seconds()),
		secure: secure,
	}
}

// Attach creates a fresh session for username and sets the cookie.
func (w *SessionWriter) Attach(c *gin.Context, username string) error {
	token := uuid.NewString()
	if err := w.store.Save(c.Request.Context(), token, username); err != nil {
		return err
	}
	w.setCookie(c, token, w.maxAge)
	return nil
}

// Clear destroys the current session, if any, and expires the cookie.
func (w *SessionWriter) Clear(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookie); err == nil && token != "" {
		_ = w.store.Delete(c.Request.Context(), token)
	}
	w.setCookie(c, "", -1)
}

func (w *SessionWriter) setCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", w.secure, true)
}
