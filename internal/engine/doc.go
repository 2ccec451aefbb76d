// Package engine implements the sign-in reconciliation engine.
//
// The engine is a set of pure functions over a caller-supplied event
// snapshot: it resolves the IN/OUT state that holds at an instant, validates
// candidate events against that state, and collapses an event stream into
// per-person-per-day rows of paired IN/OUT intervals.
//
// Determinism: every operation starts from the total order defined in the
// ledger package (parsed instant, then id). Buckets are processed in
// first-seen order of that total order, never re-sorted by name or date.
// No wall clock, no randomness, no hidden state - grouping the same
// snapshot twice yields identical rows.
//
// The engine holds nothing between calls. Consistency across a
// read-validate-append sequence is the caller's job; the store serializes
// writers for the application, but the engine itself works on whatever
// snapshot it is handed.
package engine
