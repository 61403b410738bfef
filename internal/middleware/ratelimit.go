package middleware

import (
	"net"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"rentnest-server/internal/utils"
)

// RateLimitMiddleware applies a per-client token bucket on public routes.
// Clients are keyed by IP; limiters for idle clients are kept until process
// restart, which is acceptable at this traffic scale.
func RateLimitMiddleware(perSecond float64, burst int) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)

	limiterFor := func(key string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		l, ok := limiters[key]
		if !ok {
			l = rate.NewLimiter(rate.Limit(perSecond), burst)
			limiters[key] = l
		}
		return l
	}

	return func(c *gin.Context) {
		if !limiterFor(ClientIP(c)).Allow() {
			utils.Error(c, 429, "Too many requests")
			c.Abort()
			return
		}
		c.Next()
	}
}

// ClientIP picks the first X-Forwarded-For IP, else X-Real-IP, else the
// RemoteAddr host.
func ClientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	if xrip := c.GetHeader("X-Real-IP"); xrip != "" {
		return xrip
	}
	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return c.Request.RemoteAddr
}
