package instrumentation

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the telemetry settings of the serve and export commands.
// ConfigFromEnv fills it from the environment; unset variables keep the
// values of DefaultConfig.
type Config struct {
	// ServiceName is reported as service.name (default: hebcal)
	ServiceName string `envconfig:"OTEL_SERVICE_NAME"`

	// ServiceVersion is the build version, set by the command
	ServiceVersion string `ignored:"true"`

	// ServiceInstanceID defaults to the hostname
	ServiceInstanceID string `envconfig:"OTEL_SERVICE_INSTANCE_ID"`

	// Component is the command producing the telemetry: serve or export
	Component string `ignored:"true"`

	// Enabled turns metrics and tracing on (default: true)
	Enabled bool `envconfig:"INSTRUMENTATION_ENABLED"`

	// MetricsExporter is one of prometheus, otlp, stdout (default: prometheus)
	MetricsExporter string `envconfig:"METRICS_EXPORTER"`

	// TracingExporter is one of otlp, stdout, none (default: none)
	TracingExporter string `envconfig:"TRACING_EXPORTER"`

	// OTLPEndpoint is the collector host:port, without scheme
	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	// OTLPInsecure sends OTLP over plain HTTP. Local collectors only.
	OTLPInsecure bool `envconfig:"OTEL_EXPORTER_OTLP_INSECURE"`

	// TraceSamplingRate is the ratio of sampled root spans (default: 0.1)
	TraceSamplingRate float64 `envconfig:"OTEL_TRACES_SAMPLER_ARG"`

	// ExportInterval is how often the otlp and stdout exporters push
	// metrics. Prometheus is scraped and ignores it.
	ExportInterval time.Duration `envconfig:"METRICS_EXPORT_INTERVAL"`

	// DetailedLabels adds the geo method of each request to the API metrics.
	DetailedLabels bool `envconfig:"METRICS_DETAILED_LABELS"`

	AuditLogging AuditLoggingConfig `envconfig:"AUDIT_LOGGING"`
}

// AuditLoggingConfig configures the audit log of MCP tool calls.
type AuditLoggingConfig struct {
	// Enabled writes one entry per tool call (AUDIT_LOGGING_ENABLED, default: true)
	Enabled bool `split_words:"true"`

	// IncludeLocation adds the requested zip, city, geonameid or coordinates
	// (AUDIT_LOGGING_INCLUDE_LOCATION, default: false). Only the geo method
	// is logged otherwise.
	IncludeLocation bool `split_words:"true"`
}

// DefaultConfig returns the settings used when no environment is set.
func DefaultConfig() Config {
	return Config{
		ServiceName:       ServiceHebcal,
		ServiceVersion:    "unknown",
		Enabled:           true,
		MetricsExporter:   ExporterPrometheus,
		TracingExporter:   ExporterNone,
		TraceSamplingRate: 0.1,
		ExportInterval:    DefaultExportInterval,
		AuditLogging: AuditLoggingConfig{
			Enabled: true,
		},
	}
}

// ConfigFromEnv loads the configuration for component (serve or export)
// from the environment and validates it.
func ConfigFromEnv(component, version string) (Config, error) {
	cfg := DefaultConfig()
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load instrumentation environment: %w", err)
	}
	cfg.Component = component
	if version != "" {
		cfg.ServiceVersion = version
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks exporter names and their required settings.
func (c *Config) Validate() error {
	if c.TraceSamplingRate < 0 || c.TraceSamplingRate > 1 {
		return fmt.Errorf("trace sampling rate must be between 0.0 and 1.0, got %f", c.TraceSamplingRate)
	}

	switch c.MetricsExporter {
	case "", ExporterPrometheus, ExporterStdout:
	case ExporterOTLP:
		if c.OTLPEndpoint == "" {
			return fmt.Errorf("OTLP endpoint is required for the otlp metrics exporter; set OTEL_EXPORTER_OTLP_ENDPOINT or use prometheus")
		}
	default:
		return fmt.Errorf("invalid metrics exporter %q, must be one of: prometheus, otlp, stdout", c.MetricsExporter)
	}

	switch c.TracingExporter {
	case "", ExporterNone, ExporterStdout:
	case ExporterOTLP:
		if c.OTLPEndpoint == "" {
			return fmt.Errorf("OTLP endpoint is required for the otlp tracing exporter")
		}
	default:
		return fmt.Errorf("invalid tracing exporter %q, must be one of: otlp, stdout, none", c.TracingExporter)
	}

	if c.ExportInterval < 0 {
		return fmt.Errorf("metrics export interval must not be negative, got %s", c.ExportInterval)
	}
	return nil
}

// Constants for metric label values.
const (
	// Status values
	StatusSuccess = "success"
	StatusError   = "error"
	StatusUnknown = "unknown"

	// Service name
	ServiceHebcal = "hebcal"

	// Commands that report telemetry
	ComponentServe  = "serve"
	ComponentExport = "export"

	// Export trigger values
	TriggerManual   = "manual"
	TriggerSchedule = "schedule"

	// Exporter types
	ExporterPrometheus = "prometheus"
	ExporterOTLP       = "otlp"
	ExporterStdout     = "stdout"
	ExporterNone       = "none"

	// DefaultExportInterval is the push interval of the otlp and stdout
	// metrics exporters.
	DefaultExportInterval = 30 * time.Second
)
