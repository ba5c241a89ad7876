package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/memodb-io/rentspot/internal/telemetry"
)

// Metrics records request count, latency and in-flight gauge per route pattern.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		telemetry.IncInFlight()
		defer telemetry.DecInFlight()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		telemetry.RecordHTTPRequest(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
	}
}
