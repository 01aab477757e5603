// Package batch runs one tool operation over several keys, such as a
// Shabbat lookup for a list of locations.
//
// This package includes helpers for:
//   - Parsing parameters that accept both single values and arrays
//   - Running the operation with bounded concurrency and partial failures
//   - Formatting batch results in a consistent structure
package batch
