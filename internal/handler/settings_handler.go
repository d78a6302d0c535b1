package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/rainbow-kids-api/internal/dto"
	"github.com/noah-isme/rainbow-kids-api/internal/models"
	"github.com/noah-isme/rainbow-kids-api/internal/service"
	"github.com/noah-isme/rainbow-kids-api/pkg/response"
)

type settingsService interface {
	Load(ctx context.Context, notices *service.Notices) (map[string]string, error)
	Save(ctx context.Context, form dto.SettingsForm, notices *service.Notices) error
}

// SettingsHandler edits the SEO and school contact settings.
type SettingsHandler struct {
	service  settingsService
	onChange func(ctx context.Context, table string)
}

// NewSettingsHandler constructs the handler. onChange runs after a save
// attempt so the public settings are re-read.
func NewSettingsHandler(svc settingsService, onChange func(ctx context.Context, table string)) *SettingsHandler {
	return &SettingsHandler{service: svc, onChange: onChange}
}

// Get godoc
// @Summary Load site settings
// @Tags Settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	var notices service.Notices
	var values map[string]string
	ok, err := underShell(c, func() error {
		var err error
		values, err = h.service.Load(c.Request.Context(), &notices)
		return err
	})
	if !ok {
		return
	}
	if err != nil {
		response.Error(c, err, noticeMeta(c, notices.List(), nil))
		return
	}
	response.JSON(c, http.StatusOK, dto.SettingsForm{Values: values}, nil, noticeMeta(c, notices.List(), nil))
}

// Update godoc
// @Summary Save site settings
// @Description Writes each submitted key in key order and stops at the first failure
// @Tags Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.SettingsForm true "Settings"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /admin/settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	var form dto.SettingsForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, bindError(err, "invalid settings payload"))
		return
	}
	var notices service.Notices
	ok, err := underShell(c, func() error {
		err := h.service.Save(c.Request.Context(), form, &notices)
		if h.onChange != nil {
			h.onChange(c.Request.Context(), models.TableSiteSettings)
		}
		return err
	})
	if !ok {
		return
	}
	if err != nil {
		response.ErrorWithData(c, err, form, noticeMeta(c, notices.List(), nil))
		return
	}
	response.JSON(c, http.StatusOK, form, nil, noticeMeta(c, notices.List(), nil))
}
