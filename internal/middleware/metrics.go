package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/acadsync/timetable-api/internal/service"
)

// Metrics records one observation per request, labelled by method, route
// template and status. Unmatched routes fall back to the raw path so 404s
// stay visible without exploding label cardinality on matched ones.
func Metrics(metrics *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		metrics.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
