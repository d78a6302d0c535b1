package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/rainbow-kids-api/internal/models"
	"github.com/noah-isme/rainbow-kids-api/internal/service"
)

func newSettingsRouter(gateway *tableGateway, changed *[]string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewSettingsHandler(service.NewSettingsService(gateway, nil), func(_ context.Context, table string) {
		*changed = append(*changed, table)
	})
	r := gin.New()
	r.GET("/admin/settings", h.Get)
	r.PUT("/admin/settings", h.Update)
	return r
}

func seedSettingRows(g *tableGateway) {
	g.seed(models.TableSiteSettings,
		models.Row{"id": "s-1", "key": models.SettingSchoolName, "value": "Rainbow Kids Academy"},
		models.Row{"id": "s-2", "key": models.SettingSchoolPhone, "value": ""},
	)
}

func TestSettingsHandlerGet(t *testing.T) {
	gateway := newTableGateway()
	seedSettingRows(gateway)
	var changed []string
	r := newSettingsRouter(gateway, &changed)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/settings", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	values := decodeEnvelope(rec).Data["values"].(map[string]interface{})
	assert.Equal(t, "Rainbow Kids Academy", values[models.SettingSchoolName])
}

func TestSettingsHandlerSaveInvalidatesPublicSettings(t *testing.T) {
	gateway := newTableGateway()
	seedSettingRows(gateway)
	var changed []string
	r := newSettingsRouter(gateway, &changed)

	body := bytes.NewBufferString(`{"values":{"school_phone":"(555) 123-4567"}}`)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/admin/settings", body))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "(555) 123-4567", gateway.tables[models.TableSiteSettings][1]["value"])
	assert.Equal(t, []string{models.TableSiteSettings}, changed)
}

func TestSettingsHandlerRejectsUnknownKey(t *testing.T) {
	gateway := newTableGateway()
	var changed []string
	r := newSettingsRouter(gateway, &changed)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/admin/settings", bytes.NewBufferString(`{"values":{"theme":"dark"}}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, gateway.count("update:site_settings"))
}
