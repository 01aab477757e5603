package logging

import (
	"log/slog"
)

// SlogAdapter adapts an slog.Logger to the key-value logger interface of
// github.com/robfig/cron/v3 (cron.Logger), so scheduled jobs log through
// the application logger.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter wrapping the given slog.Logger.
// If logger is nil, slog.Default() is used.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger}
}

// Info logs scheduler housekeeping at debug level; cron emits it on every
// wake-up and it would drown the info stream.
// Arguments are alternating key-value pairs: key1, value1, key2, value2, ...
func (a *SlogAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Debug(msg, keysAndValues...)
}

// Error logs an error message with key-value pairs.
func (a *SlogAdapter) Error(err error, msg string, keysAndValues ...interface{}) {
	a.logger.Error(msg, append([]interface{}{Err(err)}, keysAndValues...)...)
}

// Logger returns the underlying slog.Logger for direct access when needed.
func (a *SlogAdapter) Logger() *slog.Logger {
	return a.logger
}
