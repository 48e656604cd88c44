package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aretw0/stickyboard/pkg/core"
	"github.com/aretw0/stickyboard/pkg/session"
)

const invalidCredentials = "Invalid credentials"

func (h *handler) HandleLoginStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"authenticated": currentSession(c).IsAuthenticated(c.Request.Context()),
	})
}

func (h *handler) HandleLogin(c *gin.Context) {
	var req session.Credentials
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Error("failed to bind request body", "error", err)
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	s, err := h.sessions.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, core.ErrAuth) {
			abort(c, newUnauthorizedError(invalidCredentials))
			return
		}
		h.logger.Error("failed to login", "error", err)
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	// A fresh id replaces any session the visitor already held.
	h.sessions.Destroy(currentSession(c).ID)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, s.ID, 0, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (h *handler) HandleLogout(c *gin.Context) {
	s := currentSession(c)
	if err := s.Logout(c.Request.Context()); err != nil {
		h.logger.Error("failed to logout", "error", err)
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}
	h.sessions.Destroy(s.ID)
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/login")
}
