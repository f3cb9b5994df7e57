// Package security holds the HTTP middleware that guards every request:
// CSRF protection for forms, response security headers and request ids.
package security

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
)

// ContextKeyCSRFField is the Gin context key holding the hidden form field.
const ContextKeyCSRFField = "csrf_field"

// CSRFMiddleware creates a Gin middleware for CSRF protection of all
// state-changing requests. When secure is false the request is marked as
// plain HTTP so that the referer check for TLS does not reject local forms.
func CSRFMiddleware(secret []byte, secure bool) gin.HandlerFunc {
	csrfProtect := csrf.Protect(
		secret,
		csrf.Secure(secure),
		csrf.HttpOnly(true),
		csrf.SameSite(csrf.SameSiteStrictMode),
		csrf.Path("/"),
		csrf.ErrorHandler(http.HandlerFunc(csrfErrorHandler)),
	)

	return func(c *gin.Context) {
		if !secure {
			c.Request = csrf.PlaintextHTTPRequest(c.Request)
		}

		passed := false
		handler := csrfProtect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			passed = true
			c.Set(ContextKeyCSRFField, csrf.TemplateField(r))
			// Session middleware runs after this and layers its context on top.
			c.Request = r
			c.Next()
		}))

		handler.ServeHTTP(c.Writer, c.Request)
		if !passed {
			c.Abort()
		}
	}
}

func csrfErrorHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Form Expired</title></head>
<body style="font-family: system-ui; max-width: 400px; margin: 100px auto; text-align: center;">
<h1>Form Expired</h1>
<p>The form submission was invalid or has expired.</p>
<p><a href="/books/page/1">Back to books</a></p>
</body>
</html>`))
}

// CSRFField returns the hidden input carrying the CSRF token, or an empty
// string when CSRF protection is not installed.
func CSRFField(c *gin.Context) template.HTML {
	if field, ok := c.Get(ContextKeyCSRFField); ok {
		if f, ok := field.(template.HTML); ok {
			return f
		}
	}
	return ""
}
