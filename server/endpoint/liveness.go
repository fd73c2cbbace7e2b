package endpoint

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/apikit/response"
)

// Liveness returns a handler for K8s liveness probes.
// It simply confirms the process is alive and able to serve HTTP.
func Liveness(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		response.OK(c, ProbeStatus{
			Status:    "alive",
			Service:   serviceName,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}
}
