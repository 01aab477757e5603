// Package logging provides structured logging utilities for the hebcal application.
//
// This package centralizes logging patterns to ensure consistent, structured logging
// throughout the codebase using the standard library's slog package.
//
// # Key Features
//
//   - Structured logging with slog, text or JSON output
//   - Coordinate coarsening so precise locations never reach the logs
//   - Consistent attribute naming across the codebase
//   - An adapter so the cron scheduler logs through slog
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "hebcal.shabbat")
//	logger.Info("fetched times",
//	    logging.Status("success"))
//
// Log a location without exposing it:
//
//	logger.Debug("request",
//	    logging.Location(opts.Latitude, opts.Longitude))
package logging
