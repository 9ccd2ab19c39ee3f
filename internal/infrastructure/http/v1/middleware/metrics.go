package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// HTTPObserver records finished requests. *metrics.Metrics implements it.
type HTTPObserver interface {
	ObserveHTTP(route, method, status string, start time.Time)
}

// Metrics records every request by its route template, not the raw path,
// so ids do not explode label cardinality.
func Metrics(obs HTTPObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		obs.ObserveHTTP(route, c.Request.Method, strconv.Itoa(c.Writer.Status()), start)
	}
}
