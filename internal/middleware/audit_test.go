package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/rainbow-kids-api/internal/models"
)

type recordingAudit struct {
	logs []*models.AuditLog
}

func (r *recordingAudit) CreateAuditLog(_ context.Context, log *models.AuditLog) error {
	r.logs = append(r.logs, log)
	return nil
}

func TestAuditRecordsSuccessfulWrites(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &recordingAudit{}
	r := gin.New()
	group := r.Group("/admin/teachers", Audit(repo, "teachers", nil))
	group.GET("", func(c *gin.Context) { c.Status(http.StatusOK) })
	group.PUT("/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	group.DELETE("/:id", func(c *gin.Context) { c.Status(http.StatusPreconditionRequired) })

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/admin/teachers", nil),
		httptest.NewRequest(http.MethodPut, "/admin/teachers/t1", nil),
		httptest.NewRequest(http.MethodDelete, "/admin/teachers/t1", nil),
	} {
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	require.Len(t, repo.logs, 1)
	assert.Equal(t, models.AuditActionUpdate, repo.logs[0].Action)
	assert.Equal(t, "teachers", repo.logs[0].Resource)
	require.NotNil(t, repo.logs[0].ResourceID)
	assert.Equal(t, "t1", *repo.logs[0].ResourceID)
}
