package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"
)

// RequestLogger logs one line per request at a level chosen by status class.
func RequestLogger(log *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		latency := time.Since(start)
		switch {
		case status >= http.StatusInternalServerError:
			log.Errorf("%s %s %d %s %s", c.Request.Method, c.Request.URL.Path, status, latency, c.ClientIP())
		case status >= http.StatusBadRequest:
			log.Warningf("%s %s %d %s %s", c.Request.Method, c.Request.URL.Path, status, latency, c.ClientIP())
		default:
			log.Infof("%s %s %d %s %s", c.Request.Method, c.Request.URL.Path, status, latency, c.ClientIP())
		}
	}
}
