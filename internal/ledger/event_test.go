package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	in, err := ParseAction("IN")
	require.NoError(t, err)
	assert.Equal(t, In, in)

	out, err := ParseAction("OUT")
	require.NoError(t, err)
	assert.Equal(t, Out, out)

	_, err = ParseAction("in")
	assert.Error(t, err)
	_, err = ParseAction("")
	assert.Error(t, err)
}

func TestAction_Opposite(t *testing.T) {
	assert.Equal(t, Out, In.Opposite())
	assert.Equal(t, In, Out.Opposite())
}

func TestEvent_DateAndClock(t *testing.T) {
	e := Event{ID: 0, Name: "Alice", Action: In, Timestamp: "2025-04-15 09:05 AM"}
	assert.Equal(t, "2025-04-15", e.Date())
	assert.Equal(t, "9:05 AM", ClockOf(e.Timestamp))
}

func TestDateOf_Malformed(t *testing.T) {
	// No space: the whole string is the bucket key.
	assert.Equal(t, "garbage", DateOf("garbage"))
	assert.Equal(t, "", ClockOf("garbage"))
}

func TestEvent_Validate(t *testing.T) {
	valid := Event{ID: 1, Name: "Alice", Action: In, Timestamp: "2025-01-01 9:00 AM"}
	assert.NoError(t, valid.Validate())

	// A malformed timestamp is domain data, not a contract violation.
	dirty := Event{ID: 2, Name: "Bob", Action: Out, Timestamp: "???"}
	assert.NoError(t, dirty.Validate())

	assert.Error(t, Event{ID: 3, Action: In, Timestamp: "2025-01-01 9:00 AM"}.Validate())
	assert.Error(t, Event{ID: 4, Name: "Carol", Action: "SIDEWAYS"}.Validate())
}

func TestCompareEvents_InstantThenID(t *testing.T) {
	a := Event{ID: 5, Name: "A", Action: In, Timestamp: "2025-01-01 9:00 AM"}
	b := Event{ID: 2, Name: "A", Action: Out, Timestamp: "2025-01-01 9:00 AM"}
	c := Event{ID: 0, Name: "A", Action: In, Timestamp: "2025-01-01 10:00 AM"}

	// Same instant: id ascending breaks the tie.
	assert.Equal(t, 1, CompareEvents(a, b))
	assert.Equal(t, -1, CompareEvents(b, a))
	// Later instant beats smaller id.
	assert.Equal(t, -1, CompareEvents(a, c))
}

func TestSortedEvents_DeterministicAndPure(t *testing.T) {
	events := []Event{
		{ID: 0, Name: "A", Action: In, Timestamp: "2025-01-01 10:00 AM"},
		{ID: 1, Name: "A", Action: In, Timestamp: "broken timestamp"},
		{ID: 2, Name: "A", Action: Out, Timestamp: "2025-01-01 9:00 AM"},
	}

	sorted := SortedEvents(events)
	require.Len(t, sorted, 3)
	// Sentinel first, then chronological.
	assert.Equal(t, 1, sorted[0].ID)
	assert.Equal(t, 2, sorted[1].ID)
	assert.Equal(t, 0, sorted[2].ID)

	// Input order untouched.
	assert.Equal(t, 0, events[0].ID)

	// Stable across repeated runs over the same snapshot.
	assert.Equal(t, sorted, SortedEvents(events))
}
