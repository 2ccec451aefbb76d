// Package ledger defines the value types of the sign-in ledger: actions,
// timestamps, and events.
//
// The timestamp representation is the human-facing string
// "YYYY-MM-DD H:MM AM" (12-hour clock, no leading zero on the hour, whole
// minutes). Parsing is deliberately fail-soft: a malformed timestamp parses
// to the zero Stamp, which orders before every valid instant. Ordering over
// arbitrarily dirty historical data must stay total, so no function in this
// package returns a parse error.
//
// Event ordering is always (parsed instant, id). Ids are positional within
// one snapshot of the event list and are recomputed by the store on removal;
// they are usable only as a deterministic tie-break, never as stable
// identity.
package ledger
