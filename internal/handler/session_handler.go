package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/rainbow-kids-api/internal/middleware"
	"github.com/noah-isme/rainbow-kids-api/internal/service"
	appErrors "github.com/noah-isme/rainbow-kids-api/pkg/errors"
	"github.com/noah-isme/rainbow-kids-api/pkg/response"
)

const defaultHeartbeat = 15 * time.Second

// SessionHandler exposes the admin shell state.
type SessionHandler struct {
	heartbeat time.Duration
}

// NewSessionHandler constructs the handler. A non-positive heartbeat uses 15s.
func NewSessionHandler(heartbeat time.Duration) *SessionHandler {
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeat
	}
	return &SessionHandler{heartbeat: heartbeat}
}

func (h *SessionHandler) shell(c *gin.Context) (*service.AdminShell, bool) {
	shell, ok := middleware.Shell(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
	}
	return shell, ok
}

// Current godoc
// @Summary Admin shell state
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/session [get]
func (h *SessionHandler) Current(c *gin.Context) {
	shell, ok := h.shell(c)
	if !ok {
		return
	}
	response.JSON(c, http.StatusOK, shell.Decision(), nil)
}

// Events godoc
// @Summary Admin shell events
// @Description Server-sent events: one "state" event on connect, "ping" heartbeats, and a final "state" event once the session ends anywhere
// @Tags Admin
// @Produce text/event-stream
// @Security BearerAuth
// @Router /admin/session/events [get]
func (h *SessionHandler) Events(c *gin.Context) {
	shell, ok := h.shell(c)
	if !ok {
		return
	}
	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	c.Header("Cache-Control", "no-store")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("state", shell.Decision())
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case <-shell.Done():
			c.SSEvent("state", shell.Decision())
			return false
		case <-ticker.C:
			c.SSEvent("ping", time.Now().UTC().Format(time.RFC3339))
			return true
		}
	})
}

// Logout godoc
// @Summary Sign out of the admin
// @Description Signs out and returns the redirect to the login page
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/logout [post]
func (h *SessionHandler) Logout(c *gin.Context) {
	shell, ok := h.shell(c)
	if !ok {
		return
	}
	response.JSON(c, http.StatusOK, shell.Logout(c.Request.Context()), nil)
}
