package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/rainbow-kids-api/internal/dto"
	appErrors "github.com/noah-isme/rainbow-kids-api/pkg/errors"
)

type fakeDashboardSrv struct {
	stats *dto.DashboardStats
	err   error
	calls int
}

func (f *fakeDashboardSrv) Summary(context.Context) (*dto.DashboardStats, error) {
	f.calls++
	return f.stats, f.err
}

func TestDashboardHandlerSummary(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewDashboardHandler(&fakeDashboardSrv{stats: &dto.DashboardStats{TotalEnrollments: 4, PendingEnrollments: 2}})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)

	handler.Summary(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(rec)
	assert.Equal(t, float64(4), envelope.Data["total_enrollments"])
	assert.Equal(t, float64(2), envelope.Data["pending_enrollments"])
}

func TestDashboardHandlerGatewayFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewDashboardHandler(&fakeDashboardSrv{err: appErrors.Gateway(errGatewayDown, "Failed to load dashboard")})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)

	handler.Summary(c)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestDashboardHandlerEndedSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeDashboardSrv{stats: &dto.DashboardStats{}}
	handler := NewDashboardHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	endedShell(c)

	handler.Summary(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, srv.calls)
}
