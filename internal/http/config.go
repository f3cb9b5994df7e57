package http

import (
	"github.com/mrlokans/bookshelf/internal/readonly"
	"github.com/mrlokans/bookshelf/internal/security"
	"github.com/mrlokans/bookshelf/internal/session"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	Books    BookStore
	Database Pinger

	// Sessions enables flash messages; nil disables them.
	Sessions *session.Manager

	// CSRF protection is installed when the secret is set.
	CSRFSecret    []byte
	SecureCookies bool

	ReadOnly *readonly.Middleware

	// WriteLimiter throttles form submissions per client; nil disables it.
	WriteLimiter *security.WriteRateLimiter

	// TrustedProxies may set X-Forwarded-For; empty trusts no one.
	TrustedProxies []string

	Version string
}
