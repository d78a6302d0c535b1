package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/rainbow-kids-api/internal/models"
	"github.com/noah-isme/rainbow-kids-api/internal/service"
	"github.com/noah-isme/rainbow-kids-api/pkg/response"
)

type enrollmentExporter interface {
	Enrollments(ctx context.Context, format, query string) (*service.ExportFile, error)
}

type statusRequest struct {
	Status models.EnrollmentStatus `json:"status" binding:"required"`
}

// EnrollmentHandler is the admin enrollment desk.
type EnrollmentHandler struct {
	gateway   service.Gateway
	exporter  enrollmentExporter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEnrollmentHandler constructs the enrollment desk handler.
func NewEnrollmentHandler(gateway service.Gateway, exporter enrollmentExporter, validate *validator.Validate, logger *zap.Logger) *EnrollmentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentHandler{gateway: gateway, exporter: exporter, validator: validate, logger: logger}
}

// Register mounts the desk routes on group.
func (h *EnrollmentHandler) Register(group *gin.RouterGroup) {
	group.GET("", h.List)
	group.GET("/export", h.Export)
	group.PATCH("/:id/status", h.SetStatus)
}

type deskView struct {
	Items []models.Enrollment `json:"items"`
	Stale bool                `json:"stale,omitempty"`
}

// List godoc
// @Summary List enrollments
// @Description Newest first, filtered by ?search over child, parent and email
// @Tags Enrollments
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search text"
// @Success 200 {object} response.Envelope
// @Router /admin/enrollments [get]
func (h *EnrollmentHandler) List(c *gin.Context) {
	desk := service.NewEnrollmentDesk(h.gateway, h.validator, h.logger)
	ok, err := underShell(c, func() error { return desk.Load(c.Request.Context()) })
	if !ok {
		return
	}
	view := deskView{Items: desk.Search(c.Query("search")), Stale: desk.Stale()}
	if err != nil {
		response.ErrorWithData(c, err, view, noticeMeta(c, desk.Notices(), nil))
		return
	}
	response.JSON(c, http.StatusOK, view, nil, noticeMeta(c, desk.Notices(), nil))
}

// SetStatus godoc
// @Summary Approve or reject an enrollment
// @Tags Enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Enrollment ID"
// @Param payload body statusRequest true "New status"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/enrollments/{id}/status [patch]
func (h *EnrollmentHandler) SetStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid status payload"))
		return
	}
	desk := service.NewEnrollmentDesk(h.gateway, h.validator, h.logger)
	ok, err := underShell(c, func() error {
		return desk.SetStatus(c.Request.Context(), c.Param("id"), models.EnrollmentStatus(strings.ToLower(string(req.Status))))
	})
	if !ok {
		return
	}
	view := deskView{Items: desk.Items(), Stale: desk.Stale()}
	if err != nil {
		response.ErrorWithData(c, err, view, noticeMeta(c, desk.Notices(), nil))
		return
	}
	response.JSON(c, http.StatusOK, view, nil, noticeMeta(c, desk.Notices(), nil))
}

// Export godoc
// @Summary Export enrollments
// @Description Download the (optionally filtered) list as CSV or PDF
// @Tags Enrollments
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param format query string false "csv or pdf" default(csv)
// @Param search query string false "Search text"
// @Success 200 {file} file
// @Router /admin/enrollments/export [get]
func (h *EnrollmentHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	var file *service.ExportFile
	ok, err := underShell(c, func() error {
		var err error
		file, err = h.exporter.Enrollments(c.Request.Context(), format, c.Query("search"))
		return err
	})
	if !ok {
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
