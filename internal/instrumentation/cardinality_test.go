package instrumentation

import "testing"

func TestOutcomeLabel(t *testing.T) {
	tests := []struct {
		outcome  string
		expected string
	}{
		{StatusSuccess, StatusSuccess},
		{OutcomeTransport, OutcomeTransport},
		{OutcomeService, OutcomeService},
		{OutcomeDecode, OutcomeDecode},
		{OutcomeUnknown, OutcomeUnknown},
		{"teapot", OutcomeUnknown},
		{"", OutcomeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.outcome, func(t *testing.T) {
			if got := OutcomeLabel(tt.outcome); got != tt.expected {
				t.Errorf("OutcomeLabel(%q) = %q, want %q", tt.outcome, got, tt.expected)
			}
		})
	}
}

func TestGeoLabel(t *testing.T) {
	tests := []struct {
		geo      string
		expected string
	}{
		{"geoname", "geoname"},
		{"zip", "zip"},
		{"city", "city"},
		{"pos", "pos"},
		{"", "none"},
		{"lat-long", StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.geo, func(t *testing.T) {
			if got := GeoLabel(tt.geo); got != tt.expected {
				t.Errorf("GeoLabel(%q) = %q, want %q", tt.geo, got, tt.expected)
			}
		})
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/mcp", "/mcp"},
		{"/mcp/", "/mcp"},
		{"/healthz", "/healthz"},
		{"/healthz/detailed", "/healthz/detailed"},
		{"/readyz", "/readyz"},
		{"/metrics", "/metrics"},
		{"/wp-login.php", "other"},
		{"/", "other"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := NormalizePath(tt.path); got != tt.expected {
				t.Errorf("NormalizePath(%q) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}
