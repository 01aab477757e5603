package hebcal

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// DefaultBaseURL is the public hebcal.com API host.
	DefaultBaseURL = "https://www.hebcal.com"

	// DefaultUserAgent identifies this client to the service.
	DefaultUserAgent = "hebcal-go/dev"

	envPrefix = "HEBCAL"
)

// Config holds the transport settings of a Client.
type Config struct {
	// BaseURL is the service root (default: https://www.hebcal.com)
	BaseURL string `envconfig:"BASE_URL" default:"https://www.hebcal.com"`

	// UserAgent is sent with every request (default: hebcal-go/dev)
	UserAgent string `envconfig:"USER_AGENT"`

	// Timeout bounds a whole round trip on the HTTP client. Zero means no
	// timeout; the core imposes none of its own.
	Timeout time.Duration `envconfig:"TIMEOUT"`
}

// DefaultConfig returns the configuration for the public service.
func DefaultConfig() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		UserAgent: DefaultUserAgent,
	}
}

// ConfigFromEnv loads the configuration from HEBCAL_* environment variables.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load %s_* environment: %w", envPrefix, err)
	}
	return cfg, nil
}
