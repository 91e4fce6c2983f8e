package middleware

import (
	"time"

	"pv-battery-estimator/internal/logger"
	"pv-battery-estimator/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Logger writes one access log line per request.
func Logger(log logger.Logger) gin.HandlerFunc {
	if log == nil {
		log = logger.NopLogger{}
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := map[string]any{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"client":   c.ClientIP(),
		}
		l := log.With(fields)
		switch {
		case c.Writer.Status() >= 500:
			l.Errorf("request failed")
		case c.Writer.Status() >= 400:
			l.Warnf("request rejected")
		default:
			l.Infof("request handled")
		}
	}
}

// Metrics counts requests by method, route and status. Unmatched routes are
// grouped under "unmatched" to keep label cardinality bounded.
func Metrics(rec *metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		rec.ObserveRequest(c.Request.Method, route, c.Writer.Status())
	}
}
