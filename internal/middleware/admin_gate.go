package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/rainbow-kids-api/internal/service"
	appErrors "github.com/noah-isme/rainbow-kids-api/pkg/errors"
	"github.com/noah-isme/rainbow-kids-api/pkg/response"
)

// ContextShellKey is the gin context key storing the request's AdminShell.
const ContextShellKey = "adminShell"

// AdminGate blocks every admin route until the gate has authenticated the
// caller. Rejected requests are aborted before any handler writes content
// and receive a 401 carrying the redirect target.
func AdminGate(gate *service.AdminGate) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		decision := gate.Check(c.Request.Context(), token)
		if decision.State != service.GateAuthenticated {
			response.Error(c, appErrors.ErrUnauthorized, map[string]interface{}{
				"redirect": decision.Redirect,
				"reason":   decision.Reason,
			})
			c.Abort()
			return
		}

		shell := gate.Shell(token, decision)
		if err := shell.Watch(c.Request.Context()); err != nil {
			// Without a subscription the shell still enforces the checked session.
			_ = c.Error(err)
		}
		c.Set(ContextTokenKey, token)
		c.Set(ContextShellKey, shell)
		c.Next()
	}
}

// Shell returns the AdminShell attached by AdminGate.
func Shell(c *gin.Context) (*service.AdminShell, bool) {
	value, exists := c.Get(ContextShellKey)
	if !exists {
		return nil, false
	}
	shell, ok := value.(*service.AdminShell)
	return shell, ok
}
