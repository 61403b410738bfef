package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"rentnest-server/internal/observability"
)

// RequestLogger logs every request through zerolog and records the HTTP
// metrics. Replaces gin's default logger so all output is structured.
func RequestLogger(l zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		status := c.Writer.Status()
		observability.ObserveHTTP(route, c.Request.Method, status, time.Since(start))

		l.Info().
			Str("route", route).
			Str("method", c.Request.Method).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Str("remote", ClientIP(c)).
			Msg("http_request")
	}
}
