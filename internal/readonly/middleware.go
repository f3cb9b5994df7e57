// Package readonly turns the bookshelf into a browse-only site.
package readonly

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContextKeyReadOnly is the Gin context key read by the page renderer.
const ContextKeyReadOnly = "read_only"

const blockedMessage = "This bookshelf is read-only. Changes are disabled."

// Middleware blocks write operations when read-only mode is on.
type Middleware struct {
	enabled bool
}

func NewMiddleware(enabled bool) *Middleware {
	return &Middleware{enabled: enabled}
}

func (m *Middleware) IsEnabled() bool {
	return m.enabled
}

// Handler returns a Gin middleware that marks the request context and
// rejects anything but GET, HEAD and OPTIONS with 403.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyReadOnly, m.enabled)

		if !m.enabled {
			c.Next()
			return
		}

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
		default:
			c.Data(http.StatusForbidden, "text/html; charset=utf-8", []byte(
				`<!DOCTYPE html><html><head><title>Read-only</title></head><body><p>`+
					blockedMessage+
					`</p><p><a href="/books/page/1">Back to books</a></p></body></html>`))
			c.Abort()
		}
	}
}

// Enabled reports whether the current request runs in read-only mode.
func Enabled(c *gin.Context) bool {
	return c.GetBool(ContextKeyReadOnly)
}
