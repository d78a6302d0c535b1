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

	"github.com/noah-isme/rainbow-kids-api/internal/dto"
	"github.com/noah-isme/rainbow-kids-api/internal/models"
	"github.com/noah-isme/rainbow-kids-api/internal/service"
)

func newTeacherRouter(gateway *tableGateway, changed *[]string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewEntityHandler[models.Teacher, dto.TeacherForm](gateway, service.TeacherSchema(), service.NewValidator(), nil, func(_ context.Context, table string) {
		*changed = append(*changed, table)
	})
	r := gin.New()
	h.Register(r.Group("/admin/teachers"))
	return r
}

func seedTeachers(g *tableGateway) {
	g.seed(models.TableTeachers,
		models.Row{"id": "t-1", "name": "Ms. Sarah", "role": "Lead Teacher", "display_order": 1, "is_active": true},
		models.Row{"id": "t-2", "name": "Mr. David", "role": "Music", "display_order": 2, "is_active": false},
	)
}

func TestEntityHandlerListReturnsItems(t *testing.T) {
	gateway := newTableGateway()
	seedTeachers(gateway)
	var changed []string
	r := newTeacherRouter(gateway, &changed)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/teachers", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(rec)
	items := envelope.Data["items"].([]interface{})
	assert.Len(t, items, 2)
	assert.Equal(t, "Ms. Sarah", items[0].(map[string]interface{})["name"])
}

func TestEntityHandlerNewOpensDefaults(t *testing.T) {
	gateway := newTableGateway()
	seedTeachers(gateway)
	var changed []string
	r := newTeacherRouter(gateway, &changed)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/teachers/new", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	form := decodeEnvelope(rec).Data["form"].(map[string]interface{})
	assert.Equal(t, true, form["open"])
	assert.Equal(t, "create", form["mode"])
	draft := form["draft"].(map[string]interface{})
	assert.Equal(t, float64(3), draft["display_order"])
	assert.Equal(t, true, draft["is_active"])
}

func TestEntityHandlerEditUnknownIDIsNotFound(t *testing.T) {
	gateway := newTableGateway()
	seedTeachers(gateway)
	var changed []string
	r := newTeacherRouter(gateway, &changed)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/teachers/missing/edit", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEntityHandlerCreateInvalidKeepsFormOpen(t *testing.T) {
	gateway := newTableGateway()
	var changed []string
	r := newTeacherRouter(gateway, &changed)

	body := bytes.NewBufferString(`{"name":"  ","role":"Art","display_order":1,"is_active":true}`)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/teachers", body))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := decodeEnvelope(rec)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "Name and role are required", envelope.Error.Message)
	form := envelope.Data["form"].(map[string]interface{})
	assert.Equal(t, true, form["open"])
	assert.Equal(t, "Art", form["draft"].(map[string]interface{})["role"])
	assert.Zero(t, gateway.count("insert:teachers"))
	assert.Empty(t, changed)
}

func TestEntityHandlerCreateInsertsAndCloses(t *testing.T) {
	gateway := newTableGateway()
	var changed []string
	r := newTeacherRouter(gateway, &changed)

	body := bytes.NewBufferString(`{"name":"Ms. Priya","role":"Art","display_order":1,"is_active":true}`)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/teachers", body))

	require.Equal(t, http.StatusCreated, rec.Code)
	envelope := decodeEnvelope(rec)
	assert.Equal(t, false, envelope.Data["form"].(map[string]interface{})["open"])
	assert.Len(t, envelope.Data["items"], 1)
	notices := envelope.Meta["notices"].([]interface{})
	assert.Equal(t, "Teacher added!", notices[0].(map[string]interface{})["message"])
	assert.Equal(t, []string{models.TableTeachers}, changed)
}

func TestEntityHandlerUpdateGatewayFailureEchoesDraft(t *testing.T) {
	gateway := newTableGateway()
	seedTeachers(gateway)
	var changed []string
	r := newTeacherRouter(gateway, &changed)
	gateway.writeErr = errGatewayDown

	body := bytes.NewBufferString(`{"name":"Ms. Sarah K","role":"Lead Teacher","display_order":1,"is_active":true}`)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/admin/teachers/t-1", body))

	require.Equal(t, http.StatusBadGateway, rec.Code)
	form := decodeEnvelope(rec).Data["form"].(map[string]interface{})
	assert.Equal(t, true, form["open"])
	assert.Equal(t, "t-1", form["editing_id"])
	assert.Equal(t, "Ms. Sarah K", form["draft"].(map[string]interface{})["name"])
}

func TestEntityHandlerToggleActiveFlipsFlag(t *testing.T) {
	gateway := newTableGateway()
	seedTeachers(gateway)
	var changed []string
	r := newTeacherRouter(gateway, &changed)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/admin/teachers/t-2/active", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, gateway.tables[models.TableTeachers][1]["is_active"])
}

func TestEntityHandlerDeleteRequiresConfirmation(t *testing.T) {
	gateway := newTableGateway()
	seedTeachers(gateway)
	var changed []string
	r := newTeacherRouter(gateway, &changed)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/admin/teachers/t-1", nil))

	assert.Equal(t, http.StatusPreconditionRequired, rec.Code)
	assert.Equal(t, "Are you sure you want to delete this teacher?", decodeEnvelope(rec).Meta["prompt"])
	assert.Zero(t, gateway.count("delete:teachers"))
}

func TestEntityHandlerDeleteWithConfirmHeader(t *testing.T) {
	gateway := newTableGateway()
	seedTeachers(gateway)
	var changed []string
	r := newTeacherRouter(gateway, &changed)

	req := httptest.NewRequest(http.MethodDelete, "/admin/teachers/t-1", nil)
	req.Header.Set("X-Confirm", "true")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, gateway.count("delete:teachers"))
	assert.Len(t, decodeEnvelope(rec).Data["items"], 1)
}

func TestEntityHandlerEndedSessionWritesNothing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gateway := newTableGateway()
	seedTeachers(gateway)
	h := NewEntityHandler[models.Teacher, dto.TeacherForm](gateway, service.TeacherSchema(), service.NewValidator(), nil, nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/teachers", nil)
	endedShell(c)

	h.List(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	envelope := decodeEnvelope(rec)
	assert.Nil(t, envelope.Data)
	assert.Equal(t, "/admin/login", envelope.Meta["redirect"])
}

func TestEntityHandlerCreateOmittedFieldsKeepDefaults(t *testing.T) {
	gateway := newTableGateway()
	seedTeachers(gateway)
	var changed []string
	r := newTeacherRouter(gateway, &changed)

	body := bytes.NewBufferString(`{"name":"Ms. Priya","role":"Art"}`)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/teachers", body))

	require.Equal(t, http.StatusCreated, rec.Code)
	stored := gateway.tables[models.TableTeachers][2]
	assert.Equal(t, "Ms. Priya", stored["name"])
	assert.Equal(t, true, stored["is_active"])
	assert.EqualValues(t, 3, stored["display_order"])
}

func TestEntityHandlerCreateTestimonialDefaultsRating(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gateway := newTableGateway()
	h := NewEntityHandler[models.Testimonial, dto.TestimonialForm](gateway, service.TestimonialSchema(), service.NewValidator(), nil, nil)
	r := gin.New()
	h.Register(r.Group("/admin/testimonials"))

	body := bytes.NewBufferString(`{"name":"Anita Rao","role":"Parent","content":"Lovely staff."}`)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/testimonials", body))

	require.Equal(t, http.StatusCreated, rec.Code)
	stored := gateway.tables[models.TableTestimonials][0]
	assert.EqualValues(t, 5, stored["rating"])
	assert.Equal(t, true, stored["is_active"])
	assert.Equal(t, "AR", stored["avatar_initials"])
}

func TestEntityHandlerUpdateOmittedFieldsKeepStoredValues(t *testing.T) {
	gateway := newTableGateway()
	seedTeachers(gateway)
	var changed []string
	r := newTeacherRouter(gateway, &changed)

	body := bytes.NewBufferString(`{"name":"Mr. David K"}`)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/admin/teachers/t-2", body))

	require.Equal(t, http.StatusOK, rec.Code)
	stored := gateway.tables[models.TableTeachers][1]
	assert.Equal(t, "Mr. David K", stored["name"])
	assert.Equal(t, "Music", stored["role"])
	assert.Equal(t, false, stored["is_active"])
	assert.EqualValues(t, 2, stored["display_order"])
}

func TestEntityHandlerCreateMalformedJSON(t *testing.T) {
	gateway := newTableGateway()
	var changed []string
	r := newTeacherRouter(gateway, &changed)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/teachers", bytes.NewBufferString(`{"name":`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, gateway.count("select:teachers"))
	assert.Zero(t, gateway.count("insert:teachers"))
}
