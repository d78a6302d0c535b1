package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/rainbow-kids-api/internal/middleware"
	"github.com/noah-isme/rainbow-kids-api/internal/service"
	appErrors "github.com/noah-isme/rainbow-kids-api/pkg/errors"
	"github.com/noah-isme/rainbow-kids-api/pkg/response"
)

// underShell runs fn under the request's AdminShell so that nothing is
// written once the session has ended. It reports whether fn's response may
// stand; when it returns false a session-ended response has been sent.
func underShell(c *gin.Context, fn func() error) (bool, error) {
	shell, ok := middleware.Shell(c)
	if !ok {
		return true, fn()
	}
	err := shell.Run(fn)
	if err != nil && appErrors.FromError(err).Code == appErrors.ErrSessionEnded.Code {
		decision := shell.Decision()
		response.Error(c, appErrors.ErrSessionEnded, map[string]interface{}{
			"redirect": decision.Redirect,
			"reason":   decision.Reason,
		})
		return false, err
	}
	return true, err
}

func noticeMeta(c *gin.Context, notices []service.Notice, extra map[string]interface{}) map[string]interface{} {
	meta := middleware.ExtractMeta(c, extra)
	if len(notices) > 0 {
		meta["notices"] = notices
	}
	return meta
}

func confirmed(c *gin.Context) bool {
	if strings.EqualFold(c.Query("confirm"), "true") {
		return true
	}
	return strings.EqualFold(c.GetHeader("X-Confirm"), "true")
}

func bindError(err error, message string) *appErrors.Error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, message)
}
