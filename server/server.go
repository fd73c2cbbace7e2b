package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/kbukum/apikit/errors"
	"github.com/kbukum/apikit/logger"
	"github.com/kbukum/apikit/observability"
	"github.com/kbukum/apikit/response"
	"github.com/kbukum/apikit/server/endpoint"
	"github.com/kbukum/apikit/server/middleware"
)

const healthComponentName = "http-server"

// Server is an HTTP server backed by Gin, served over HTTP/1.1 and h2c.
// Every response it produces, including unknown routes, wrong methods,
// panics and rate-limit rejections, uses the response envelope.
type Server struct {
	httpServer  *http.Server
	engine      *gin.Engine
	mux         *http.ServeMux
	config      Config
	log         *logger.Logger
	serviceName string
	metrics     *observability.Metrics
	running     atomic.Bool
}

// Option customizes a Server.
type Option func(*Server)

// WithServiceName sets the name used in span attributes and metrics.
func WithServiceName(name string) Option {
	return func(s *Server) { s.serviceName = name }
}

// WithMetrics enables request and error metrics in the tracing middleware.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// New creates a new Server. The Gin engine answers unknown routes with
// NOT_FOUND and known routes with the wrong method with METHOD_NOT_ALLOWED;
// no other middleware is applied until ApplyMiddleware.
func New(cfg Config, log *logger.Logger, opts ...Option) *Server {
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	engine.NoRoute(func(c *gin.Context) {
		response.RespondWithError(c, errors.NotFound("route not found"))
	})
	engine.NoMethod(func(c *gin.Context) {
		response.RespondWithError(c, errors.MethodNotAllowed())
	})

	mux := http.NewServeMux()
	mux.Handle("/", engine)

	s := &Server{
		engine:      engine,
		mux:         mux,
		config:      cfg,
		log:         log.WithComponent("server"),
		serviceName: "apikit",
	}
	for _, opt := range opts {
		opt(s)
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.wrap(mux),
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.IdleTimeout) * time.Second,
	}
	return s
}

// wrap applies the server-level middleware and h2c around h.
func (s *Server) wrap(h http.Handler) http.Handler {
	chain := middleware.Chain(
		middleware.Recovery(s.log),
		middleware.RequestID(),
		middleware.BodySizeLimit(s.config.MaxBodySize),
	)
	h2s := &http2.Server{
		MaxConcurrentStreams: 250,
		IdleTimeout:          time.Duration(s.config.IdleTimeout) * time.Second,
	}
	return h2c.NewHandler(chain(h), h2s)
}

// GinEngine returns the underlying Gin engine for route registration.
func (s *Server) GinEngine() *gin.Engine {
	return s.engine
}

// Handler returns the root handler, including server-level middleware.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Handle mounts an http.Handler at the given pattern on the root ServeMux,
// beside the Gin engine. The pattern must include a trailing slash for
// subtree matches.
func (s *Server) Handle(pattern string, handler http.Handler) {
	s.mux.Handle(pattern, handler)
	s.log.Debug("Handler mounted", logger.Fields("pattern", pattern))
}

// Start binds the port and begins serving. It returns once the listener is
// bound so the caller knows the port is ready; serving continues in a goroutine.
func (s *Server) Start(ctx context.Context) error {
	s.log.Info("Starting HTTP server", logger.Fields("addr", s.httpServer.Addr))

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("server failed to bind %s: %w", s.httpServer.Addr, err)
	}
	s.httpServer.Addr = listener.Addr().String()
	s.running.Store(true)

	go func() {
		defer s.running.Store(false)
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error("Server error", logger.Fields(logger.FieldError, err.Error()))
		}
	}()

	s.log.Info("HTTP server started", logger.Fields("addr", s.httpServer.Addr))
	return nil
}

// Stop gracefully shuts down the server with a 5-second deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.log.Error("Server shutdown error", logger.Fields(logger.FieldError, err.Error()))
		return fmt.Errorf("server shutdown error: %w", err)
	}
	s.running.Store(false)

	s.log.Info("HTTP server shut down successfully")
	return nil
}

// Addr returns the listen address. After Start it is the bound address, so a
// configured port of 0 resolves to the real port.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// CheckHealth reports the server as up while it is serving.
func (s *Server) CheckHealth(context.Context) observability.Health {
	if s.running.Load() {
		return observability.Health{Name: healthComponentName, Status: observability.HealthStatusUp}
	}
	return observability.Health{Name: healthComponentName, Status: observability.HealthStatusDown, Message: "not serving"}
}

// ApplyMiddleware applies the standard Gin middleware stack: tracing, request
// logging, panic recovery, CORS, then compression and rate limiting when
// enabled in the config.
func (s *Server) ApplyMiddleware() {
	s.engine.Use(middleware.Tracing(s.serviceName, s.metrics))
	s.engine.Use(middleware.RequestLogger(s.log))
	s.engine.Use(middleware.GinRecovery(s.log))
	s.engine.Use(middleware.CORS(&s.config.CORS))
	if s.config.Compression {
		s.engine.Use(middleware.Gzip())
	}
	if s.config.RateLimit.Enabled {
		s.engine.Use(middleware.RateLimit(s.config.RateLimit))
	}
}

// RegisterDefaultEndpoints registers /health, /liveness, /readiness, /info
// and /version. The server itself is always one of the health checkers.
func (s *Server) RegisterDefaultEndpoints(serviceName, version string, checkers ...observability.HealthChecker) {
	checkers = append([]observability.HealthChecker{s}, checkers...)
	s.engine.GET("/health", endpoint.Health(serviceName, version, checkers...))
	s.engine.GET("/liveness", endpoint.Liveness(serviceName))
	s.engine.GET("/readiness", endpoint.Readiness(serviceName, checkers...))
	s.engine.GET("/info", endpoint.Info(serviceName))
	s.engine.GET("/version", endpoint.Version())
}

// ApplyDefaults applies the standard middleware stack and registers default endpoints.
func (s *Server) ApplyDefaults(serviceName, version string, checkers ...observability.HealthChecker) {
	s.ApplyMiddleware()
	s.RegisterDefaultEndpoints(serviceName, version, checkers...)
}
