package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"roomlog/internal/ledger"
)

func TestStateAt_EmptyHistoryIsOut(t *testing.T) {
	assert.Equal(t, ledger.Out, StateAt(nil, "2025-01-01 9:00 AM"))
	assert.Equal(t, ledger.Out, StateAt([]ledger.Event{}, "garbage"))
}

func TestStateAt_InclusiveBoundary(t *testing.T) {
	events := []ledger.Event{
		{ID: 0, Name: "A", Action: ledger.In, Timestamp: "2025-01-01 9:00 AM"},
	}

	// At the event's own instant the event has already taken effect.
	assert.Equal(t, ledger.In, StateAt(events, "2025-01-01 9:00 AM"))
	// One minute earlier it has not.
	assert.Equal(t, ledger.Out, StateAt(events, "2025-01-01 8:59 AM"))
	// Well after, it still holds.
	assert.Equal(t, ledger.In, StateAt(events, "2025-01-01 5:00 PM"))
}

func TestStateAt_FollowsEventSequence(t *testing.T) {
	events := []ledger.Event{
		{ID: 0, Name: "A", Action: ledger.In, Timestamp: "2025-01-01 9:00 AM"},
		{ID: 1, Name: "A", Action: ledger.Out, Timestamp: "2025-01-01 12:00 PM"},
		{ID: 2, Name: "A", Action: ledger.In, Timestamp: "2025-01-01 1:00 PM"},
	}

	assert.Equal(t, ledger.In, StateAt(events, "2025-01-01 10:00 AM"))
	assert.Equal(t, ledger.Out, StateAt(events, "2025-01-01 12:30 PM"))
	assert.Equal(t, ledger.In, StateAt(events, "2025-01-01 11:59 PM"))
}

func TestStateAt_UnsortedInputSnapshot(t *testing.T) {
	// The resolver sorts internally; snapshot order must not matter.
	events := []ledger.Event{
		{ID: 2, Name: "A", Action: ledger.In, Timestamp: "2025-01-01 1:00 PM"},
		{ID: 0, Name: "A", Action: ledger.In, Timestamp: "2025-01-01 9:00 AM"},
		{ID: 1, Name: "A", Action: ledger.Out, Timestamp: "2025-01-01 12:00 PM"},
	}
	assert.Equal(t, ledger.Out, StateAt(events, "2025-01-01 12:15 PM"))
}

func TestStateAt_TieBrokenByLargerID(t *testing.T) {
	// Two events at literally the same instant: the larger id is applied
	// last and determines the state.
	events := []ledger.Event{
		{ID: 0, Name: "A", Action: ledger.In, Timestamp: "2025-01-01 9:00 AM"},
		{ID: 1, Name: "A", Action: ledger.Out, Timestamp: "2025-01-01 9:00 AM"},
	}
	assert.Equal(t, ledger.Out, StateAt(events, "2025-01-01 9:00 AM"))

	flipped := []ledger.Event{
		{ID: 0, Name: "A", Action: ledger.Out, Timestamp: "2025-01-01 9:00 AM"},
		{ID: 1, Name: "A", Action: ledger.In, Timestamp: "2025-01-01 9:00 AM"},
	}
	assert.Equal(t, ledger.In, StateAt(flipped, "2025-01-01 9:00 AM"))
}

func TestStateAt_MalformedEventsSortFirst(t *testing.T) {
	// A malformed timestamp orders before everything, so it is always
	// within the <= window and simply gets overridden by later events.
	events := []ledger.Event{
		{ID: 0, Name: "A", Action: ledger.In, Timestamp: "broken"},
		{ID: 1, Name: "A", Action: ledger.Out, Timestamp: "2025-01-01 9:00 AM"},
	}
	assert.Equal(t, ledger.Out, StateAt(events, "2025-01-01 9:00 AM"))
	// Before the valid event, only the sentinel applies.
	assert.Equal(t, ledger.In, StateAt(events, "2025-01-01 8:00 AM"))
}
