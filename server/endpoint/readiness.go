package endpoint

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/apikit/errors"
	"github.com/kbukum/apikit/observability"
	"github.com/kbukum/apikit/response"
)

// ProbeStatus is the success payload of the liveness and readiness probes.
type ProbeStatus struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}

// Readiness returns a handler for K8s readiness probes. The service is not
// ready while any checker reports down.
func Readiness(serviceName string, checkers ...observability.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		sh := observability.CheckAll(c.Request.Context(), serviceName, "", checkers...)
		if sh.IsDown() {
			response.RespondWithError(c, errors.ServiceUnavailable("not ready"))
			return
		}
		response.OK(c, ProbeStatus{
			Status:    "ready",
			Service:   serviceName,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}
}
