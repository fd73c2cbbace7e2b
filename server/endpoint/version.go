package endpoint

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/apikit/response"
	"github.com/kbukum/apikit/version"
)

// Version returns a handler that reports build version information.
func Version() gin.HandlerFunc {
	return response.Handle(func(*gin.Context) (*version.Info, error) {
		return version.GetVersionInfo(), nil
	})
}
