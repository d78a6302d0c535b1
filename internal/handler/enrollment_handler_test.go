package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/rainbow-kids-api/internal/models"
	"github.com/noah-isme/rainbow-kids-api/internal/service"
)

func newDeskRouter(gateway *tableGateway) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewEnrollmentHandler(gateway, service.NewExportService(gateway, nil, nil), nil, nil).Register(r.Group("/admin/enrollments"))
	NewMessageHandler(gateway, nil, nil).Register(r.Group("/admin/messages"))
	return r
}

func seedDesk(g *tableGateway) {
	g.seed(models.TableEnrollments,
		models.Row{"id": "e-1", "child_name": "Mia", "date_of_birth": "2021-03-04", "class_type": "nursery", "parent_name": "Ana", "email": "ana@example.com", "phone": "1", "status": "pending"},
		models.Row{"id": "e-2", "child_name": "Leo", "date_of_birth": "2020-01-02", "class_type": "junior-kg", "parent_name": "Ben", "email": "ben@example.com", "phone": "2", "status": "approved"},
	)
	g.seed(models.TableContactMessages,
		models.Row{"id": "m-1", "name": "Ana", "email": "ana@example.com", "message": "Hello", "is_read": false},
		models.Row{"id": "m-2", "name": "Ben", "email": "ben@example.com", "message": "Tour?", "is_read": true},
	)
}

func TestEnrollmentHandlerSearch(t *testing.T) {
	gateway := newTableGateway()
	seedDesk(gateway)
	r := newDeskRouter(gateway)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/enrollments?search=ben", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	items := decodeEnvelope(rec).Data["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "Leo", items[0].(map[string]interface{})["child_name"])
}

func TestEnrollmentHandlerSetStatus(t *testing.T) {
	gateway := newTableGateway()
	seedDesk(gateway)
	r := newDeskRouter(gateway)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/admin/enrollments/e-1/status", bytes.NewBufferString(`{"status":"approved"}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "approved", gateway.tables[models.TableEnrollments][0]["status"])
	notices := decodeEnvelope(rec).Meta["notices"].([]interface{})
	assert.Equal(t, "Enrollment approved", notices[0].(map[string]interface{})["message"])
}

func TestEnrollmentHandlerRejectsUnknownStatus(t *testing.T) {
	gateway := newTableGateway()
	seedDesk(gateway)
	r := newDeskRouter(gateway)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/admin/enrollments/e-1/status", bytes.NewBufferString(`{"status":"waitlisted"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, gateway.count("update:enrollments"))
}

func TestEnrollmentHandlerSetStatusUnknownID(t *testing.T) {
	gateway := newTableGateway()
	seedDesk(gateway)
	r := newDeskRouter(gateway)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/admin/enrollments/e-404/status", bytes.NewBufferString(`{"status":"approved"}`)))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Zero(t, gateway.count("update:enrollments"))
}

func TestEnrollmentHandlerExportCSV(t *testing.T) {
	gateway := newTableGateway()
	seedDesk(gateway)
	r := newDeskRouter(gateway)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/enrollments/export?format=csv", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "enrollments-")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Child,"))
	assert.Contains(t, rec.Body.String(), "Mia")
}

func TestMessageHandlerMarkRead(t *testing.T) {
	gateway := newTableGateway()
	seedDesk(gateway)
	r := newDeskRouter(gateway)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/admin/messages/m-1/read", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, gateway.tables[models.TableContactMessages][0]["is_read"])
	assert.Equal(t, float64(0), decodeEnvelope(rec).Data["unread"])
}

func TestMessageHandlerMarkReadUnknownID(t *testing.T) {
	gateway := newTableGateway()
	seedDesk(gateway)
	r := newDeskRouter(gateway)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/admin/messages/m-404/read", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Zero(t, gateway.count("update:contact_messages"))
}

func TestMessageHandlerListCountsUnread(t *testing.T) {
	gateway := newTableGateway()
	seedDesk(gateway)
	r := newDeskRouter(gateway)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/messages", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(rec)
	assert.Equal(t, float64(1), envelope.Data["unread"])
	assert.Len(t, envelope.Data["items"], 2)
}
