// Package cmd implements the command-line interface for hebcal.
//
// This package provides the following commands:
//   - shabbat: Show this week's candle-lighting, parashat and havdalah times
//   - export: Write the times as an iCalendar file, once or on a cron schedule
//   - config: Manage the YAML profile with the default location and preferences
//   - serve: Start the MCP server to provide tools for AI assistants
//   - version: Display version information
//   - generate-docs: Generate markdown documentation for all MCP tools
//
// The shabbat command is the default command when no subcommand is specified.
package cmd
