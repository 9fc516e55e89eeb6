package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/EgorTarasov/ldt-2023/internal/metrics"
	"github.com/EgorTarasov/ldt-2023/internal/pkg/logger"
)

// Metrics records HTTP metrics and an access log line for each request.
// The route pattern is used instead of the raw path to keep metric
// cardinality bounded.
func Metrics(registry *metrics.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unknown"
		}

		registry.HTTPRequestsInFlight.WithLabelValues(endpoint).Inc()
		defer registry.HTTPRequestsInFlight.WithLabelValues(endpoint).Dec()

		start := time.Now()
		c.Next()
		duration := time.Since(start).Seconds()

		status := strconv.Itoa(c.Writer.Status())
		registry.HTTPRequestsTotal.WithLabelValues(endpoint, c.Request.Method, status).Inc()
		registry.HTTPRequestDuration.WithLabelValues(endpoint, c.Request.Method).Observe(duration)

		logger.Info().
			Str("method", c.Request.Method).
			Str("endpoint", endpoint).
			Str("status", status).
			Int("duration_ms", int(duration*1000)).
			Str("client_ip", c.ClientIP()).
			Msg("HTTP request completed")
	}
}
