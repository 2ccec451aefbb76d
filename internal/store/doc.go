// Package store provides SQLite-backed durable storage for the sign-in
// ledger.
//
// The event log is an append-and-compact list, not an identity-keyed table:
// an event's id is its position, assigned on append and recomputed on
// removal so ids stay contiguous and equal to position. Consumers treat ids
// as a deterministic tie-break within one snapshot only - never as stable
// identity across mutations.
//
// Alongside the log the store keeps the roster of known names and the card
// registry mapping scanner card ids to names. A card lookup miss is
// ErrCardNotRegistered, a distinct condition from any sign-in/out
// validation rejection.
//
// # Database configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON
//   - single connection: one writer at a time, which is the only
//     serialization the read-validate-append sequence relies on
package store
