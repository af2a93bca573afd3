// Package batch evaluates whole report sets.
//
// Ownership boundary:
// - valid/repairable counting across a batch
// - optional worker fan-out
// - heuristic-versus-exhaustive audits
package batch
