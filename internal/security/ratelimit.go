package security

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	limiterIdleTimeout = 3 * time.Minute
	sweepInterval      = time.Minute
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// WriteRateLimiter is a per-client token bucket applied to form submissions.
// Safe methods are never limited.
type WriteRateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*client
	limit     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

// NewWriteRateLimiter allows perSecond writes per client with the given burst.
func NewWriteRateLimiter(perSecond float64, burst int) *WriteRateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &WriteRateLimiter{
		clients: make(map[string]*client),
		limit:   rate.Limit(perSecond),
		burst:   burst,
		now:     time.Now,
	}
}

func (l *WriteRateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > sweepInterval {
		for key, c := range l.clients {
			if now.Sub(c.lastSeen) > limiterIdleTimeout {
				delete(l.clients, key)
			}
		}
		l.lastSweep = now
	}

	c, found := l.clients[ip]
	if !found {
		c = &client{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

// Handler returns a Gin middleware answering 429 once a client runs out
// of tokens.
func (l *WriteRateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		if !l.allow(c.ClientIP()) {
			c.Header("Retry-After", "1")
			c.Data(http.StatusTooManyRequests, "text/plain; charset=utf-8",
				[]byte("Too many changes at once. Please wait a moment and try again."))
			c.Abort()
			return
		}
		c.Next()
	}
}
