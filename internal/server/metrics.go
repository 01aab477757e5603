package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/teemow/hebcal/internal/instrumentation"
)

const (
	// DefaultMetricsAddr is where serve exposes /metrics unless configured.
	DefaultMetricsAddr = ":9090"

	metricsReadHeaderTimeout = 10 * time.Second
	metricsWriteTimeout      = 10 * time.Second
	metricsIdleTimeout       = 60 * time.Second

	// DefaultShutdownTimeout bounds the graceful shutdown of the MCP listener.
	DefaultShutdownTimeout = 30 * time.Second
)

// MetricsServerConfig configures the scrape listener of serve and of
// scheduled exports.
type MetricsServerConfig struct {
	// Addr is the listen address (default: DefaultMetricsAddr)
	Addr string

	// InstrumentationProvider must be enabled and use the prometheus exporter
	InstrumentationProvider *instrumentation.Provider
}

// MetricsServer exposes the Prometheus registry on its own port, away
// from the MCP endpoint, plus a /healthz that names the reporting process.
type MetricsServer struct {
	httpServer *http.Server
	addr       string
	info       scrapeTarget
}

// scrapeTarget is the /healthz body of the metrics listener, so a scrape
// config can be checked against the process it reaches.
type scrapeTarget struct {
	Status    string `json:"status"`
	Service   string `json:"service,omitempty"`
	Version   string `json:"version,omitempty"`
	Component string `json:"component,omitempty"`
}

// NewMetricsServer validates config and prepares the listener. Nothing is
// bound until Start.
func NewMetricsServer(config MetricsServerConfig) (*MetricsServer, error) {
	p := config.InstrumentationProvider
	switch {
	case p == nil:
		return nil, errors.New("instrumentation provider is required for metrics server")
	case !p.Enabled():
		return nil, errors.New("instrumentation provider is not enabled")
	case !p.HasPrometheus():
		return nil, errors.New("metrics server requires the prometheus exporter, got " + p.MetricsExporter())
	}

	addr := config.Addr
	if addr == "" {
		addr = DefaultMetricsAddr
	}

	s := &MetricsServer{addr: addr, info: targetFromProvider(p)}

	mux := http.NewServeMux()
	// the otel prometheus exporter registers on the default registry
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: metricsReadHeaderTimeout,
		WriteTimeout:      metricsWriteTimeout,
		IdleTimeout:       metricsIdleTimeout,
	}
	return s, nil
}

func targetFromProvider(p *instrumentation.Provider) scrapeTarget {
	t := scrapeTarget{Status: healthStatusOK}
	res := p.Resource()
	if res == nil {
		return t
	}
	set := res.Set()
	if v, ok := set.Value(semconv.ServiceNameKey); ok {
		t.Service = v.Emit()
	}
	if v, ok := set.Value(semconv.ServiceVersionKey); ok {
		t.Version = v.Emit()
	}
	if v, ok := set.Value(instrumentation.ResourceAttrComponent); ok {
		t.Component = v.Emit()
	}
	return t
}

func (s *MetricsServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.info)
}

// Handler returns the mux served by Start.
func (s *MetricsServer) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start listens until Shutdown. It returns http.ErrServerClosed after a
// clean shutdown.
func (s *MetricsServer) Start() error {
	slog.Info("starting metrics server", "addr", s.addr, "component", s.info.Component)
	return s.httpServer.ListenAndServe()
}

// Shutdown stops the listener, waiting for in-flight scrapes.
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	slog.Info("shutting down metrics server", "addr", s.addr)
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the configured listen address.
func (s *MetricsServer) Addr() string {
	return s.addr
}
