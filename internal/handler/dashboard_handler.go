package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/rainbow-kids-api/internal/dto"
	"github.com/noah-isme/rainbow-kids-api/internal/middleware"
	"github.com/noah-isme/rainbow-kids-api/pkg/response"
)

type dashboardService interface {
	Summary(ctx context.Context) (*dto.DashboardStats, error)
}

// DashboardHandler serves the admin overview cards.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(svc dashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// Summary godoc
// @Summary Admin dashboard
// @Description Counts for enrollments, active content and messages
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /admin/dashboard [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	var stats *dto.DashboardStats
	ok, err := underShell(c, func() error {
		var err error
		stats, err = h.service.Summary(c.Request.Context())
		return err
	})
	if !ok {
		return
	}
	if err != nil {
		response.Error(c, err, middleware.ExtractMeta(c, nil))
		return
	}
	response.JSON(c, http.StatusOK, stats, nil, middleware.ExtractMeta(c, nil))
}
