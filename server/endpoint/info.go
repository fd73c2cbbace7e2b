package endpoint

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/apikit/response"
	"github.com/kbukum/apikit/version"
)

// startTime records when the process started for uptime calculation.
var startTime = time.Now()

// ServiceInfo is the success payload of the info endpoint.
type ServiceInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
	Timestamp string `json:"timestamp"`
}

// Info returns a handler that reports the service name, version and uptime.
func Info(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v := version.GetVersionInfo()
		response.OK(c, ServiceInfo{
			Service:   serviceName,
			Version:   v.Short(),
			GitCommit: v.GitCommit,
			GoVersion: v.GoVersion,
			Uptime:    time.Since(startTime).Round(time.Second).String(),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}
}
