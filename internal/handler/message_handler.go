package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/rainbow-kids-api/internal/models"
	"github.com/noah-isme/rainbow-kids-api/internal/service"
	"github.com/noah-isme/rainbow-kids-api/pkg/response"
)

// MessageHandler is the admin contact inbox.
type MessageHandler struct {
	gateway   service.Gateway
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMessageHandler constructs the inbox handler.
func NewMessageHandler(gateway service.Gateway, validate *validator.Validate, logger *zap.Logger) *MessageHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MessageHandler{gateway: gateway, validator: validate, logger: logger}
}

// Register mounts the inbox routes on group.
func (h *MessageHandler) Register(group *gin.RouterGroup) {
	group.GET("", h.List)
	group.PATCH("/:id/read", h.MarkRead)
}

type inboxView struct {
	Items  []models.ContactMessage `json:"items"`
	Unread int                     `json:"unread"`
	Stale  bool                    `json:"stale,omitempty"`
}

func (h *MessageHandler) respond(c *gin.Context, inbox *service.MessageInbox, items []models.ContactMessage, err error) {
	view := inboxView{Items: items, Unread: inbox.UnreadCount(), Stale: inbox.Stale()}
	if err != nil {
		response.ErrorWithData(c, err, view, noticeMeta(c, inbox.Notices(), nil))
		return
	}
	response.JSON(c, http.StatusOK, view, nil, noticeMeta(c, inbox.Notices(), nil))
}

// List godoc
// @Summary List contact messages
// @Tags Messages
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search text"
// @Success 200 {object} response.Envelope
// @Router /admin/messages [get]
func (h *MessageHandler) List(c *gin.Context) {
	inbox := service.NewMessageInbox(h.gateway, h.validator, h.logger)
	ok, err := underShell(c, func() error { return inbox.Load(c.Request.Context()) })
	if ok {
		h.respond(c, inbox, inbox.Search(c.Query("search")), err)
	}
}

// MarkRead godoc
// @Summary Mark a message read
// @Tags Messages
// @Produce json
// @Security BearerAuth
// @Param id path string true "Message ID"
// @Success 200 {object} response.Envelope
// @Router /admin/messages/{id}/read [patch]
func (h *MessageHandler) MarkRead(c *gin.Context) {
	inbox := service.NewMessageInbox(h.gateway, h.validator, h.logger)
	ok, err := underShell(c, func() error { return inbox.MarkRead(c.Request.Context(), c.Param("id")) })
	if ok {
		h.respond(c, inbox, inbox.Items(), err)
	}
}
