package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

const (
	responseMetaKey = "response_meta"
	requestStartKey = "request_start"
	sourceKey       = "source"
)

// WithResponseMeta initialises response metadata storage on the request context.
func WithResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(requestStartKey, time.Now())
		c.Set(responseMetaKey, map[string]interface{}{})
		c.Next()
	}
}

// SetSource records whether a public section came from the gateway or from
// baked-in content.
func SetSource(c *gin.Context, source string) {
	ensureMeta(c)[sourceKey] = source
}

// ExtractMeta returns a copy of the metadata stored on the context merged
// with extra, plus the elapsed processing time. Keys in extra win.
func ExtractMeta(c *gin.Context, extra map[string]interface{}) map[string]interface{} {
	out := map[string]interface{}{}
	if c != nil {
		if meta, exists := c.Get(responseMetaKey); exists {
			if typed, ok := meta.(map[string]interface{}); ok {
				for k, v := range typed {
					out[k] = v
				}
			}
		}
		if start, ok := c.Get(requestStartKey); ok {
			if ts, ok := start.(time.Time); ok {
				out["processing_time_ms"] = time.Since(ts).Milliseconds()
			}
		}
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

func ensureMeta(c *gin.Context) map[string]interface{} {
	if meta, exists := c.Get(responseMetaKey); exists {
		if typed, ok := meta.(map[string]interface{}); ok {
			return typed
		}
	}
	newMeta := make(map[string]interface{})
	c.Set(responseMetaKey, newMeta)
	return newMeta
}
