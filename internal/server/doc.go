// Package server provides the MCP server context and the HTTP plumbing
// around it for the hebcal application.
//
// # Key Components
//
// ServerContext holds the shared hebcal client together with the optional
// metrics recorder and audit logger used by the MCP tools.
//
// HTTPServer serves the MCP streamable-http transport on /mcp next to the
// Kubernetes health endpoints (/healthz, /readyz, /healthz/detailed). Every
// request is counted in http_requests_total.
//
// MetricsServer exposes Prometheus metrics on a dedicated port so that
// operational data is not reachable through the MCP listener.
package server
