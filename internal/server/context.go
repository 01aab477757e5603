package server

import (
	"context"
	"sync"

	"github.com/teemow/hebcal/internal/hebcal"
	"github.com/teemow/hebcal/internal/instrumentation"
)

// ServerContext holds the context for the MCP server
type ServerContext struct {
	ctx         context.Context
	cancel      context.CancelFunc
	client      *hebcal.Client
	metrics     *instrumentation.Metrics
	auditLogger *instrumentation.AuditLogger
	upstream    *UpstreamTracker
	mu          sync.RWMutex
	shutdown    bool
}

// NewServerContext creates a new server context around a hebcal client.
// A nil client falls back to hebcal.Default().
func NewServerContext(ctx context.Context, client *hebcal.Client) (*ServerContext, error) {
	shutdownCtx, cancel := context.WithCancel(ctx)

	if client == nil {
		client = hebcal.Default()
	}

	return &ServerContext{
		ctx:    shutdownCtx,
		cancel: cancel,
		client: client,
	}, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Client returns the hebcal client shared by all tools
func (sc *ServerContext) Client() *hebcal.Client {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.client
}

// SetMetrics sets the metrics recorder used by instrumented tools
func (sc *ServerContext) SetMetrics(m *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = m
}

// Metrics returns the metrics recorder, or nil if instrumentation is off
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetAuditLogger sets the audit logger used by instrumented tools
func (sc *ServerContext) SetAuditLogger(al *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = al
}

// AuditLogger returns the audit logger, or nil if audit logging is off
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// SetUpstream sets the tracker that the shared client reports to
func (sc *ServerContext) SetUpstream(t *UpstreamTracker) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.upstream = t
}

// Upstream returns the upstream tracker, or nil if none was set
func (sc *ServerContext) Upstream() *UpstreamTracker {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.upstream
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
