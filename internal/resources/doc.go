// Package resources provides MCP resources for exposing server configuration.
// Resources are read-only data sources that MCP clients can fetch, such as
// the default location of the profile and the upstream hebcal.com endpoint.
package resources
