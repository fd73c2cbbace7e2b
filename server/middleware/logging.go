package middleware

import (
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/apikit/logger"
)

var healthPaths = []string{"/health", "/liveness", "/readiness", "/alive", "/ready"}

// RequestLogger logs one line per request with method, path, status and
// latency, plus the envelope error code when the handler wrote an error.
// The level follows the status: error for 5xx, warn for 4xx, debug otherwise.
// Health-check paths are skipped.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if isHealthEndpoint(c.Request.URL.Path) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		path := c.Request.URL.Path
		if q := c.Request.URL.RawQuery; q != "" {
			path = path + "?" + q
		}

		fields := logger.Fields(
			logger.FieldMethod, c.Request.Method,
			logger.FieldPath, path,
			logger.FieldStatus, status,
			logger.FieldDuration, latency.Milliseconds(),
			"client", c.ClientIP(),
		)
		if appErr := contextError(c); appErr != nil {
			fields[logger.FieldErrorCode] = string(appErr.Code())
		}
		if status >= 500 {
			fields["size"] = c.Writer.Size()
		}
		if latency > 500*time.Millisecond {
			fields["slow"] = true
		}

		logByStatus(log.WithContext(c.Request.Context()), fields, status)
	}
}

func isHealthEndpoint(path string) bool {
	if slices.Contains(healthPaths, path) {
		return true
	}
	if strings.HasPrefix(path, "/api") {
		for _, hp := range healthPaths {
			if strings.HasSuffix(path, hp) {
				return true
			}
		}
	}
	return false
}

func logByStatus(log *logger.Logger, fields map[string]any, status int) {
	switch {
	case status >= 500:
		log.Error("Request completed", fields)
	case status >= 400:
		log.Warn("Request completed", fields)
	default:
		log.Debug("Request completed", fields)
	}
}
