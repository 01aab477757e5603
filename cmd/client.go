package cmd

import (
	"fmt"
	"log/slog"

	"github.com/teemow/hebcal/internal/config"
	"github.com/teemow/hebcal/internal/hebcal"
)

// newClient creates a hebcal client from HEBCAL_* environment variables.
// metrics may be nil.
func newClient(logger *slog.Logger, metrics hebcal.MetricsRecorder) (*hebcal.Client, error) {
	cfg, err := hebcal.ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	if cfg.UserAgent == hebcal.DefaultUserAgent {
		cfg.UserAgent = "hebcal-go/" + version
	}

	opts := []hebcal.Option{hebcal.WithLogger(logger)}
	if metrics != nil {
		opts = append(opts, hebcal.WithMetrics(metrics))
	}

	client, err := hebcal.NewClient(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create hebcal client: %w", err)
	}
	return client, nil
}

// loadProfile reads --config, or the default profile location.
func loadProfile() (*config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return nil, err
		}
	}
	return config.Load(path)
}

// requestError wraps a failed request with its classification.
func requestError(err error) error {
	return fmt.Errorf("hebcal.com request failed (%s): %w", hebcal.Kind(err), err)
}
