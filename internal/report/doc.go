// Package report owns the report data model and the validity rule.
//
// Ownership boundary:
// - report and diff sequence shapes
// - the monotonic bounded-step validity predicate
// - read-only removal views used by repair strategies
package report
