// Command apikit-demo serves a small in-memory items API that answers every
// request with the apikit response envelope.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/apikit/config"
	"github.com/kbukum/apikit/logger"
	"github.com/kbukum/apikit/observability"
	"github.com/kbukum/apikit/server"
	"github.com/kbukum/apikit/util"
	"github.com/kbukum/apikit/version"
)

const serviceName = "apikit-demo"

// TelemetryConfig toggles OTLP export of traces and metrics.
type TelemetryConfig struct {
	Enabled bool                       `yaml:"enabled" mapstructure:"enabled"`
	Tracer  observability.TracerConfig `yaml:"tracer" mapstructure:"tracer"`
	Meter   observability.MeterConfig  `yaml:"meter" mapstructure:"meter"`
}

// Config is the demo service configuration.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Server               server.Config   `yaml:"server" mapstructure:"server"`
	Telemetry            TelemetryConfig `yaml:"telemetry" mapstructure:"telemetry"`
}

func (c *Config) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.Name = util.Coalesce(c.Name, serviceName)
	c.Version = util.Coalesce(c.Version, version.GetVersionInfo().Short())
	c.Server.ApplyDefaults()
	c.Telemetry.Tracer.ServiceName = util.Coalesce(c.Telemetry.Tracer.ServiceName, c.Name)
	c.Telemetry.Tracer.ServiceVersion = util.Coalesce(c.Telemetry.Tracer.ServiceVersion, c.Version)
	c.Telemetry.Tracer.Environment = util.Coalesce(c.Telemetry.Tracer.Environment, c.Environment)
	c.Telemetry.Tracer.Endpoint = util.Coalesce(c.Telemetry.Tracer.Endpoint, "localhost:4318")
	c.Telemetry.Meter.ServiceName = util.Coalesce(c.Telemetry.Meter.ServiceName, c.Name)
	c.Telemetry.Meter.ServiceVersion = util.Coalesce(c.Telemetry.Meter.ServiceVersion, c.Version)
	c.Telemetry.Meter.Environment = util.Coalesce(c.Telemetry.Meter.Environment, c.Environment)
	c.Telemetry.Meter.Endpoint = util.Coalesce(c.Telemetry.Meter.Endpoint, "localhost:4318")
}

func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	return c.Server.Validate()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run() error {
	var cfg Config
	if err := config.LoadConfig(serviceName, &cfg, config.WithEnvPrefix("APIKIT")); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(&cfg.Logging, cfg.Name)
	logger.SetGlobalLogger(log)
	logger.RegisterDefaults("response", "server")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var opts []server.Option
	opts = append(opts, server.WithServiceName(cfg.Name))
	if cfg.Telemetry.Enabled {
		shutdown, metrics, err := initTelemetry(ctx, &cfg.Telemetry)
		if err != nil {
			return err
		}
		defer shutdown()
		opts = append(opts, server.WithMetrics(metrics))
	}

	store := newItemStore()
	srv := server.New(cfg.Server, log, opts...)
	srv.ApplyDefaults(cfg.Name, cfg.Version, store)

	items := &itemHandler{store: store}
	items.register(srv.GinEngine().Group("/api/v1"))
	srv.LogRoutes()

	if err := srv.Start(ctx); err != nil {
		return err
	}
	log.Info("Service ready", logger.Fields("addr", srv.Addr(), "version", cfg.Version))

	<-ctx.Done()
	log.Info("Shutdown signal received")
	return srv.Stop(context.Background())
}

func initTelemetry(ctx context.Context, cfg *TelemetryConfig) (func(), *observability.Metrics, error) {
	tp, err := observability.InitTracer(ctx, &cfg.Tracer)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing tracer: %w", err)
	}
	mp, err := observability.InitMeter(ctx, &cfg.Meter)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, nil, fmt.Errorf("initializing meter: %w", err)
	}
	metrics, err := observability.NewMetrics(observability.Meter(serviceName))
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, nil, fmt.Errorf("creating metrics: %w", err)
	}

	shutdown := func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(sctx); err != nil {
			logger.Warn("tracer shutdown failed", logger.Fields(logger.FieldError, err.Error()))
		}
		if err := mp.Shutdown(sctx); err != nil {
			logger.Warn("meter shutdown failed", logger.Fields(logger.FieldError, err.Error()))
		}
	}
	return shutdown, metrics, nil
}
