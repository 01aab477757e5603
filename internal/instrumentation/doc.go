// Package instrumentation provides OpenTelemetry instrumentation for the
// hebcal client and MCP server.
//
// This package enables production-grade observability through:
//   - OpenTelemetry metrics for hebcal.com API calls, MCP tools and HTTP requests
//   - Distributed tracing for API round trips and tool invocations
//   - Prometheus metrics export via /metrics endpoint on dedicated port
//   - OTLP export support for modern observability platforms
//
// # Metrics
//
// Server/HTTP Metrics:
//   - http_requests_total: Counter of HTTP requests by method, path, and status
//   - http_request_duration_seconds: Histogram of HTTP request durations
//   - active_sessions: Gauge of active MCP sessions
//
// hebcal.com API Metrics:
//   - hebcal_api_requests_total: Counter of API requests by endpoint and outcome
//   - hebcal_api_request_duration_seconds: Histogram of API round trip durations
//   - hebcal_api_geo_requests_total: Counter by location method (detailed labels only)
//
// MCP Tool Metrics:
//   - mcp_tool_invocations_total: Counter of MCP tool invocations by tool name and status
//   - mcp_tool_duration_seconds: Histogram of MCP tool execution durations
//
// Export Metrics:
//   - calendar_exports_total: Counter of iCalendar exports by trigger and status
//
// # Tracing
//
// Distributed tracing spans are created for:
//   - MCP tool invocations (tool.<name>)
//   - hebcal.com API calls (hebcal.<endpoint>)
//
// # Configuration
//
// ConfigFromEnv reads, on top of DefaultConfig:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: true)
//   - METRICS_EXPORTER: prometheus, otlp or stdout (default: prometheus)
//   - TRACING_EXPORTER: otlp, stdout or none (default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT, OTEL_EXPORTER_OTLP_INSECURE: OTLP collector
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 0.1)
//   - OTEL_SERVICE_NAME: Service name (default: hebcal)
//   - OTEL_SERVICE_INSTANCE_ID: Instance ID (default: hostname)
//   - METRICS_EXPORT_INTERVAL: Push interval of otlp and stdout (default: 30s)
//   - METRICS_DETAILED_LABELS: Count requests per geo method
//   - AUDIT_LOGGING_ENABLED, AUDIT_LOGGING_INCLUDE_LOCATION: tool call audit log
//
// # Example Usage
//
//	config, err := instrumentation.ConfigFromEnv(instrumentation.ComponentServe, version)
//	if err != nil {
//		return err
//	}
//	provider, err := instrumentation.NewProvider(ctx, config)
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	client, err := hebcal.NewClient(cfg, hebcal.WithMetrics(provider.Metrics()))
package instrumentation
