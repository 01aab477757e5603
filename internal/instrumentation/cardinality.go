package instrumentation

import "strings"

// Cardinality management helpers for metrics.
// These functions reduce high-cardinality label values to prevent metrics explosion.
//
// # Warning
//
// High cardinality in metrics can cause:
// - Increased memory usage in Prometheus/metrics backends
// - Slower query performance
// - Higher storage costs
//
// Always use these helpers when a label value comes from a request.

// Outcome label values for hebcal.com API requests.
// StatusSuccess doubles as the success outcome.
const (
	OutcomeTransport = "transport"
	OutcomeService   = "service"
	OutcomeDecode    = "decode"
	OutcomeUnknown   = "unknown"
)

// OutcomeLabel maps an outcome to one of the known label values.
//
// Example:
//
//	OutcomeLabel("success")   // "success"
//	OutcomeLabel("service")   // "service"
//	OutcomeLabel("teapot")    // "unknown"
func OutcomeLabel(outcome string) string {
	switch outcome {
	case StatusSuccess, OutcomeTransport, OutcomeService, OutcomeDecode:
		return outcome
	default:
		return OutcomeUnknown
	}
}

// GeoLabel maps a location method to one of the known label values.
// An empty method (no location given) is "none".
func GeoLabel(geo string) string {
	switch geo {
	case "geoname", "zip", "city", "pos":
		return geo
	case "":
		return "none"
	default:
		return StatusUnknown
	}
}

// knownPaths are the HTTP paths served by this application.
var knownPaths = []string{"/mcp", "/healthz", "/readyz", "/healthz/detailed", "/metrics"}

// NormalizePath maps a request path to a known route, or "other".
// Arbitrary paths from scanners would otherwise each create a series.
//
// Example:
//
//	NormalizePath("/mcp")         // "/mcp"
//	NormalizePath("/mcp/")        // "/mcp"
//	NormalizePath("/wp-login")    // "other"
func NormalizePath(path string) string {
	trimmed := strings.TrimSuffix(path, "/")
	for _, known := range knownPaths {
		if trimmed == known {
			return known
		}
	}
	return "other"
}
