// Package ingest turns line-oriented text into reports.
//
// Ownership boundary:
// - line and token parsing
// - parse error reporting with line/field positions
package ingest
