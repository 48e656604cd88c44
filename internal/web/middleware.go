package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aretw0/stickyboard/pkg/session"
)

const (
	// SessionCookie names the cookie carrying the session id.
	SessionCookie = "stickyboard_session"

	sessionCtxKey = "session"
)

// requestLogger writes one slog record per request.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		level := slog.LevelInfo
		if c.Writer.Status() >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, "http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

// HandleSessionMiddleware attaches the visitor's session. Without a known
// cookie the visitor gets an untracked anonymous session; only a successful
// login issues a cookie.
func (h *handler) HandleSessionMiddleware(c *gin.Context) {
	if id, err := c.Cookie(SessionCookie); err == nil {
		if s, ok := h.sessions.Get(id); ok {
			c.Set(sessionCtxKey, s)
			c.Next()
			return
		}
	}

	c.Set(sessionCtxKey, h.sessions.Anonymous())
	c.Next()
}

// HandleAuthMiddleware redirects unauthenticated visitors to /login.
func (h *handler) HandleAuthMiddleware(c *gin.Context) {
	if !currentSession(c).IsAuthenticated(c.Request.Context()) {
		h.logger.Debug("unauthenticated access", "path", c.Request.URL.Path)
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}
	c.Next()
}

func currentSession(c *gin.Context) *session.Session {
	return c.MustGet(sessionCtxKey).(*session.Session)
}
