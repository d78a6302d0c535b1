package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextTokenKey is the gin context key storing the raw session token.
const ContextTokenKey = "sessionToken"

// BearerToken extracts the token from an "Authorization: Bearer" header. The
// SSE endpoint cannot set headers from EventSource, so an access_token query
// parameter is accepted as well.
func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	return strings.TrimSpace(c.Query("access_token"))
}
