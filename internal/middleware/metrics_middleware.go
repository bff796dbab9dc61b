package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// HTTPObserver принимает замеры HTTP-запросов (реализуется pkg/metrics.Manager)
type HTTPObserver interface {
	ObserveHTTPRequest(method, route string, status int, elapsed time.Duration)
}

// Metrics замеряет длительность и статус каждого запроса.
// В метку route попадает шаблон маршрута Gin, чтобы не раздувать кардинальность.
func Metrics(observer HTTPObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		observer.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
