package instrumentation

import (
	"os"
	"strings"
	"testing"
	"time"
)

// clearEnv unsets every variable ConfigFromEnv reads for the duration of t.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OTEL_SERVICE_NAME", "OTEL_SERVICE_INSTANCE_ID", "INSTRUMENTATION_ENABLED",
		"METRICS_EXPORTER", "TRACING_EXPORTER", "OTEL_EXPORTER_OTLP_ENDPOINT",
		"OTEL_EXPORTER_OTLP_INSECURE", "OTEL_TRACES_SAMPLER_ARG", "METRICS_EXPORT_INTERVAL",
		"METRICS_DETAILED_LABELS", "AUDIT_LOGGING", "AUDIT_LOGGING_ENABLED",
		"AUDIT_LOGGING_INCLUDE_LOCATION",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestConfigFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	config, err := ConfigFromEnv(ComponentServe, "1.2.3")
	if err != nil {
		t.Fatalf("ConfigFromEnv() error = %v", err)
	}

	if config.ServiceName != ServiceHebcal {
		t.Errorf("ServiceName = %q, want %q", config.ServiceName, ServiceHebcal)
	}
	if config.ServiceVersion != "1.2.3" {
		t.Errorf("ServiceVersion = %q, want 1.2.3", config.ServiceVersion)
	}
	if config.Component != ComponentServe {
		t.Errorf("Component = %q, want %q", config.Component, ComponentServe)
	}
	if !config.Enabled {
		t.Error("expected instrumentation to be enabled by default")
	}
	if config.MetricsExporter != ExporterPrometheus || config.TracingExporter != ExporterNone {
		t.Errorf("exporters = %q/%q, want prometheus/none", config.MetricsExporter, config.TracingExporter)
	}
	if config.ExportInterval != DefaultExportInterval {
		t.Errorf("ExportInterval = %s, want %s", config.ExportInterval, DefaultExportInterval)
	}
	if config.DetailedLabels {
		t.Error("expected geo labels to be off by default")
	}
	if !config.AuditLogging.Enabled {
		t.Error("expected audit logging to be enabled by default")
	}
	if config.AuditLogging.IncludeLocation {
		t.Error("expected audit logs to omit locations by default")
	}
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("OTEL_SERVICE_NAME", "hebcal-export")
	t.Setenv("INSTRUMENTATION_ENABLED", "false")
	t.Setenv("METRICS_EXPORTER", "stdout")
	t.Setenv("TRACING_EXPORTER", "stdout")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.5")
	t.Setenv("METRICS_EXPORT_INTERVAL", "2m")
	t.Setenv("METRICS_DETAILED_LABELS", "true")
	t.Setenv("AUDIT_LOGGING_ENABLED", "false")
	t.Setenv("AUDIT_LOGGING_INCLUDE_LOCATION", "true")

	config, err := ConfigFromEnv(ComponentExport, "")
	if err != nil {
		t.Fatalf("ConfigFromEnv() error = %v", err)
	}

	if config.ServiceName != "hebcal-export" {
		t.Errorf("ServiceName = %q", config.ServiceName)
	}
	if config.ServiceVersion != "unknown" {
		t.Errorf("ServiceVersion = %q, want unknown", config.ServiceVersion)
	}
	if config.Enabled {
		t.Error("expected instrumentation to be disabled")
	}
	if config.MetricsExporter != ExporterStdout || config.TracingExporter != ExporterStdout {
		t.Errorf("exporters = %q/%q, want stdout/stdout", config.MetricsExporter, config.TracingExporter)
	}
	if config.TraceSamplingRate != 0.5 {
		t.Errorf("TraceSamplingRate = %f, want 0.5", config.TraceSamplingRate)
	}
	if config.ExportInterval != 2*time.Minute {
		t.Errorf("ExportInterval = %s, want 2m", config.ExportInterval)
	}
	if !config.DetailedLabels {
		t.Error("expected detailed labels")
	}
	if config.AuditLogging.Enabled || !config.AuditLogging.IncludeLocation {
		t.Errorf("AuditLogging = %+v, want disabled with locations", config.AuditLogging)
	}
}

func TestConfigFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		errContains string
	}{
		{
			name:        "unparsable bool",
			env:         map[string]string{"INSTRUMENTATION_ENABLED": "sometimes"},
			errContains: "INSTRUMENTATION_ENABLED",
		},
		{
			name:        "unparsable interval",
			env:         map[string]string{"METRICS_EXPORT_INTERVAL": "weekly"},
			errContains: "METRICS_EXPORT_INTERVAL",
		},
		{
			name:        "unknown exporter",
			env:         map[string]string{"METRICS_EXPORTER": "statsd"},
			errContains: "invalid metrics exporter",
		},
		{
			name:        "otlp tracing without endpoint",
			env:         map[string]string{"TRACING_EXPORTER": "otlp"},
			errContains: "OTLP endpoint is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := ConfigFromEnv(ComponentServe, "")
			if err == nil || !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("ConfigFromEnv() error = %v, want error containing %q", err, tt.errContains)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "empty exporters", mutate: func(c *Config) { c.MetricsExporter, c.TracingExporter = "", "" }},
		{name: "otlp with endpoint", mutate: func(c *Config) {
			c.MetricsExporter, c.TracingExporter, c.OTLPEndpoint = ExporterOTLP, ExporterOTLP, "localhost:4318"
		}},
		{name: "otlp metrics without endpoint", mutate: func(c *Config) { c.MetricsExporter = ExporterOTLP }, wantErr: true},
		{name: "sampling rate above one", mutate: func(c *Config) { c.TraceSamplingRate = 1.5 }, wantErr: true},
		{name: "negative sampling rate", mutate: func(c *Config) { c.TraceSamplingRate = -0.1 }, wantErr: true},
		{name: "negative interval", mutate: func(c *Config) { c.ExportInterval = -time.Second }, wantErr: true},
		{name: "unknown tracing exporter", mutate: func(c *Config) { c.TracingExporter = "jaeger" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(&config)

			err := config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
