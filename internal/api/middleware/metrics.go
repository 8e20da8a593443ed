package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/barbizo19/Bankist/internal/pkg/metrics"
)

// MetricsMiddleware records HTTP metrics for each request
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()
		method := c.Request.Method

		metrics.RecordHTTPRequest(method, path, status, duration)
	}
}
