package middleware

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/kbukum/apikit/errors"
	"github.com/kbukum/apikit/response"
)

// CORSConfig holds CORS middleware configuration.
type CORSConfig struct {
	AllowedOrigins   []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	AllowedMethods   []string `yaml:"allowed_methods" mapstructure:"allowed_methods"`
	AllowedHeaders   []string `yaml:"allowed_headers" mapstructure:"allowed_headers"`
	ExposedHeaders   []string `yaml:"exposed_headers" mapstructure:"exposed_headers"`
	AllowCredentials bool     `yaml:"allow_credentials" mapstructure:"allow_credentials"`
	MaxAge           int      `yaml:"max_age" mapstructure:"max_age"` // seconds
}

// CORS returns a Gin middleware backed by gin-contrib/cors. Requests from an
// origin outside the allow list are rejected with a FORBIDDEN envelope. A nil
// config or an empty origin list allows every origin, as Config.ApplyDefaults
// does.
func CORS(cfg *CORSConfig) gin.HandlerFunc {
	if cfg == nil {
		cfg = &CORSConfig{}
	}
	allowAll := len(cfg.AllowedOrigins) == 0 || slices.Contains(cfg.AllowedOrigins, "*")

	cc := cors.Config{
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     cfg.AllowedHeaders,
		ExposeHeaders:    append([]string{HeaderRequestID}, cfg.ExposedHeaders...),
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           time.Duration(cfg.MaxAge) * time.Second,
	}
	if allowAll {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = cfg.AllowedOrigins
	}
	handler := cors.New(cc)

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && !allowAll && !isAllowedOrigin(origin, cfg.AllowedOrigins) && !isSameOrigin(c, origin) {
			response.Abort(c, errors.Forbidden("origin not allowed"))
			return
		}
		handler(c)
	}
}

func isAllowedOrigin(origin string, allowed []string) bool {
	return slices.Contains(allowed, origin)
}

func isSameOrigin(c *gin.Context, origin string) bool {
	return origin == "http://"+c.Request.Host || origin == "https://"+c.Request.Host
}
