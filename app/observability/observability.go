// Package observability wires the logger, tracer and prometheus registry
// that every module receives explicitly.
package observability

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/Black-And-White-Club/frolf-league/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Observability bundles the process-wide telemetry handles.
type Observability struct {
	Logger   *slog.Logger
	Tracer   trace.Tracer
	Registry *prometheus.Registry
}

// New builds telemetry from cfg. Spans go to the globally registered otel
// provider, which is a no-op unless an exporter was installed.
func New(cfg config.ObservabilityConfig) Observability {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return Observability{
		Logger:   NewLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat, cfg.ServiceName, cfg.Environment),
		Tracer:   otel.Tracer(cfg.ServiceName),
		Registry: registry,
	}
}

// MetricsHandler serves the registry in the prometheus text format.
func (o Observability) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(o.Registry, promhttp.HandlerOpts{Registry: o.Registry})
}
