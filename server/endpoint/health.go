package endpoint

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/apikit/errors"
	"github.com/kbukum/apikit/observability"
	"github.com/kbukum/apikit/response"
)

// HealthReport is the success payload of the health endpoint.
type HealthReport struct {
	*observability.ServiceHealth
	Timestamp string `json:"timestamp"`
}

// Health reports aggregated component health. A service with any component
// down answers with a SERVICE_UNAVAILABLE envelope naming those components;
// degraded services still answer 200.
func Health(serviceName, version string, checkers ...observability.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		sh := observability.CheckAll(c.Request.Context(), serviceName, version, checkers...)
		if sh.IsDown() {
			response.RespondWithError(c, errors.ServiceUnavailable(downMessage(sh)))
			return
		}
		response.OK(c, HealthReport{
			ServiceHealth: sh,
			Timestamp:     time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func downMessage(sh *observability.ServiceHealth) string {
	var down []string
	for _, ch := range sh.Components {
		if ch.Status != observability.HealthStatusDown {
			continue
		}
		if ch.Message != "" {
			down = append(down, fmt.Sprintf("%s (%s)", ch.Name, ch.Message))
		} else {
			down = append(down, ch.Name)
		}
	}
	return "unhealthy: " + strings.Join(down, ", ")
}
