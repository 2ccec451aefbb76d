package ledger

import (
	"fmt"
	"slices"
	"strings"
)

// Event is one sign-in/out record: who, which way, and when.
//
// Timestamp stays in the stored string form; ordering and state resolution
// parse it on demand via Stamp. Id is the event's position within the
// snapshot it was read from.
type Event struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Action    Action `json:"action"`
	Timestamp string `json:"timestamp"`
}

// Stamp parses the event's timestamp (fail-soft, see ParseStamp).
func (e Event) Stamp() Stamp {
	return ParseStamp(e.Timestamp)
}

// Date returns the calendar-date portion of the event's timestamp, i.e.
// everything before the first space. Malformed timestamps return the whole
// raw string so they still bucket deterministically.
func (e Event) Date() string {
	return DateOf(e.Timestamp)
}

// Validate checks the event for out-of-contract input shapes. A malformed
// timestamp is NOT an error here - that is domain data the ordering layer
// absorbs - but a missing name or unknown action is a programmer error.
func (e Event) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("event %d: name is required", e.ID)
	}
	if _, err := ParseAction(string(e.Action)); err != nil {
		return fmt.Errorf("event %d: %w", e.ID, err)
	}
	return nil
}

// DateOf extracts the date portion of a raw timestamp string.
func DateOf(timestamp string) string {
	if i := strings.IndexByte(timestamp, ' '); i >= 0 {
		return timestamp[:i]
	}
	return timestamp
}

// ClockOf extracts the clock portion of a raw timestamp string, with the
// hour's leading zero stripped. Returns "" when there is no clock portion.
func ClockOf(timestamp string) string {
	i := strings.IndexByte(timestamp, ' ')
	if i < 0 {
		return ""
	}
	return StripHourZero(timestamp[i+1:])
}

// CompareEvents is the total order over events: parsed instant first, then
// id ascending as the only tie-break. With unique ids within a snapshot
// this order is strict, so repeated runs over the same snapshot always
// produce the same sequence.
func CompareEvents(a, b Event) int {
	if c := a.Stamp().Compare(b.Stamp()); c != 0 {
		return c
	}
	switch {
	case a.ID < b.ID:
		return -1
	case a.ID > b.ID:
		return 1
	default:
		return 0
	}
}

// SortedEvents returns a copy of events in total order. The input slice is
// never mutated; every consumer gets a pure view.
func SortedEvents(events []Event) []Event {
	sorted := slices.Clone(events)
	slices.SortFunc(sorted, CompareEvents)
	return sorted
}
