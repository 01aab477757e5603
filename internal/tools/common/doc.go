// Package common provides shared utilities for MCP tool implementations:
// the instrumentation wrapper every tool handler goes through and helpers
// for reading location arguments.
package common
