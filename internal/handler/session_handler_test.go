package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/rainbow-kids-api/internal/middleware"
	"github.com/noah-isme/rainbow-kids-api/internal/models"
	"github.com/noah-isme/rainbow-kids-api/internal/service"
)

type recordingAuthority struct {
	signOuts []string
}

func (r *recordingAuthority) GetSession(context.Context, string) (*models.AuthSession, error) {
	return nil, nil
}

func (r *recordingAuthority) SignOut(_ context.Context, token string) error {
	r.signOuts = append(r.signOuts, token)
	return nil
}

// streamRecorder lets gin's Stream run against a recorder.
type streamRecorder struct {
	*httptest.ResponseRecorder
}

func (streamRecorder) CloseNotify() <-chan bool { return make(chan bool) }

func liveShell(c *gin.Context, auth *recordingAuthority) *service.AdminShell {
	gate := service.NewAdminGate(auth, newTableGateway(), nil, "/admin/login", nil, nil)
	shell := gate.Shell("token-1", service.GateDecision{
		State:   service.GateAuthenticated,
		Session: &models.AuthSession{SessionID: "sess-1", User: models.UserInfo{ID: "u-1", Email: "admin@rainbowkids.test"}},
	})
	c.Set(middleware.ContextShellKey, shell)
	return shell
}

func TestSessionHandlerCurrent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/session", nil)
	liveShell(c, &recordingAuthority{})

	NewSessionHandler(0).Current(c)

	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(rec)
	assert.Equal(t, string(service.GateAuthenticated), envelope.Data["state"])
}

func TestSessionHandlerLogoutSignsOut(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := &recordingAuthority{}
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/admin/logout", nil)
	shell := liveShell(c, auth)

	NewSessionHandler(0).Logout(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"token-1"}, auth.signOuts)
	assert.False(t, shell.Authenticated())
	envelope := decodeEnvelope(rec)
	assert.Equal(t, "/admin/login", envelope.Data["redirect"])
	assert.Equal(t, service.ReasonSignedOut, envelope.Data["reason"])
}

func TestSessionHandlerEventsEndsWithShell(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := streamRecorder{httptest.NewRecorder()}
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/session/events", nil)
	shell := liveShell(c, &recordingAuthority{})

	done := make(chan struct{})
	go func() {
		NewSessionHandler(time.Hour).Events(c)
		close(done)
	}()
	shell.Logout(context.Background())

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("event stream did not end with the session")
	}
	body := rec.Body.String()
	assert.Equal(t, 2, strings.Count(body, "event:state"))
	assert.Contains(t, body, service.ReasonSignedOut)
}

func TestSessionHandlerWithoutShell(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/session", nil)

	NewSessionHandler(0).Current(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
