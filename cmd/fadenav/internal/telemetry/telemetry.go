// Package telemetry wires the router observers to Prometheus and
// OpenTelemetry for the demo binary.
package telemetry

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/go-drift/fadenav/pkg/logging"
	"github.com/go-drift/fadenav/pkg/navigation"
)

// Shutdown flushes and stops a telemetry component.
type Shutdown func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// TracingConfig governs how route tracing is initialised.
type TracingConfig struct {
	Enabled     bool
	ServiceName string
	// Output receives pretty-printed spans.
	Output io.Writer
}

// InitTracing returns a tracer provider for the router's TracingObserver and
// installs it globally. When tracing is disabled the provider is a no-op.
func InitTracing(ctx context.Context, cfg TracingConfig, log logging.Logger) (trace.TracerProvider, Shutdown, error) {
	if log == nil {
		log = logging.Noop()
	}
	if !cfg.Enabled {
		tp := noop.NewTracerProvider()
		otel.SetTracerProvider(tp)
		return tp, noopShutdown, nil
	}
	if cfg.Output == nil {
		return nil, nil, fmt.Errorf("tracing enabled without an output")
	}

	exp, err := stdouttrace.New(
		stdouttrace.WithWriter(cfg.Output),
		stdouttrace.WithPrettyPrint(),
		stdouttrace.WithoutTimestamps(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("create span exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", cfg.ServiceName),
			attribute.String("service.namespace", "fadenav"),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exp),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	log.Info(ctx, "tracing enabled", logging.String("service_name", cfg.ServiceName))
	return tp, tp.Shutdown, nil
}

// Metrics owns the registry behind the router's MetricsObserver.
type Metrics struct {
	Registry *prometheus.Registry
	Observer *navigation.MetricsObserver
}

// NewMetrics registers the router collectors and the Go runtime collectors
// on a fresh registry.
func NewMetrics() (*Metrics, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	observer, err := navigation.NewMetricsObserver(reg)
	if err != nil {
		return nil, err
	}
	return &Metrics{Registry: reg, Observer: observer}, nil
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// Serve starts a /metrics endpoint on addr in the background.
func (m *Metrics) Serve(addr string, log logging.Logger) Shutdown {
	if log == nil {
		log = logging.Noop()
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn(context.Background(), "metrics server exited", logging.Err(err))
		}
	}()

	log.Info(context.Background(), "serving Prometheus metrics", logging.String("addr", addr))
	return srv.Shutdown
}

// ShutdownWithTimeout invokes shutdown with a bounded timeout, logging
// rather than returning its error.
func ShutdownWithTimeout(ctx context.Context, name string, shutdown Shutdown, log logging.Logger) {
	if shutdown == nil {
		return
	}
	if log == nil {
		log = logging.Noop()
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		log.Warn(ctx, name+" shutdown failed", logging.Err(err))
	}
}
