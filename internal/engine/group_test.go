package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomlog/internal/ledger"
)

func ev(id int, name string, action ledger.Action, ts string) ledger.Event {
	return ledger.Event{ID: id, Name: name, Action: action, Timestamp: ts}
}

func TestGroup_Empty(t *testing.T) {
	assert.Empty(t, Group(nil))
	assert.Empty(t, Group([]ledger.Event{}))
}

func TestGroup_SimpleDay(t *testing.T) {
	events := []ledger.Event{
		ev(0, "A", ledger.In, "2025-01-01 9:00 AM"),
		ev(1, "A", ledger.Out, "2025-01-01 12:00 PM"),
		ev(2, "A", ledger.In, "2025-01-01 1:00 PM"),
	}

	rows := Group(events)
	require.Len(t, rows, 1)
	assert.Equal(t, "A", rows[0].Name)
	assert.Equal(t, "2025-01-01", rows[0].Date)
	assert.Equal(t, "Jan. 1", rows[0].Display)
	assert.Equal(t, []Interval{
		{In: "9:00 AM", Out: "12:00 PM"},
		{In: "1:00 PM"},
	}, rows[0].Intervals)

	assert.Equal(t, []string{
		"A", "Jan. 1",
		"9:00 AM", "12:00 PM",
		"1:00 PM", "",
		"", "",
		"", "",
	}, rows[0].Flat())
}

func TestGroup_SingleDanglingIn(t *testing.T) {
	rows := Group([]ledger.Event{ev(0, "A", ledger.In, "2025-04-15 8:30 AM")})
	require.Len(t, rows, 1)
	require.Len(t, rows[0].Intervals, 1)
	assert.Equal(t, Interval{In: "8:30 AM"}, rows[0].Intervals[0])

	flat := rows[0].Flat()
	require.Len(t, flat, 10)
	assert.Equal(t, []string{"A", "Apr. 15", "8:30 AM", "", "", "", "", "", "", ""}, flat)
}

func TestGroup_DanglingOut(t *testing.T) {
	rows := Group([]ledger.Event{ev(0, "A", ledger.Out, "2025-01-01 5:00 PM")})
	require.Len(t, rows, 1)
	assert.Equal(t, []Interval{{Out: "5:00 PM"}}, rows[0].Intervals)
}

func TestGroup_ConsecutiveInsFlushDangling(t *testing.T) {
	events := []ledger.Event{
		ev(0, "A", ledger.In, "2025-01-01 9:00 AM"),
		ev(1, "A", ledger.In, "2025-01-01 10:00 AM"),
		ev(2, "A", ledger.Out, "2025-01-01 11:00 AM"),
	}

	rows := Group(events)
	require.Len(t, rows, 1)
	assert.Equal(t, []Interval{
		{In: "9:00 AM"},
		{In: "10:00 AM", Out: "11:00 AM"},
	}, rows[0].Intervals)
}

func TestGroup_FivePairsSpillToSecondRow(t *testing.T) {
	var events []ledger.Event
	for i := 0; i < 5; i++ {
		events = append(events,
			ev(2*i, "A", ledger.In, fmt.Sprintf("2025-01-01 %d:00 AM", i+1)),
			ev(2*i+1, "A", ledger.Out, fmt.Sprintf("2025-01-01 %d:30 AM", i+1)),
		)
	}

	rows := Group(events)
	require.Len(t, rows, 2)
	assert.Len(t, rows[0].Intervals, 4)
	assert.Len(t, rows[1].Intervals, 1)
	assert.Equal(t, Interval{In: "5:00 AM", Out: "5:30 AM"}, rows[1].Intervals[0])

	// Second row: one interval, three blank slots.
	assert.Equal(t, []string{"A", "Jan. 1", "5:00 AM", "5:30 AM", "", "", "", "", "", ""}, rows[1].Flat())
}

func TestGroup_BucketOrderFollowsFirstSortedEvent(t *testing.T) {
	// B's first event sorts before A's, so B's rows come first even though
	// A appears first in the snapshot.
	events := []ledger.Event{
		ev(0, "A", ledger.In, "2025-01-01 10:00 AM"),
		ev(1, "B", ledger.In, "2025-01-01 8:00 AM"),
		ev(2, "A", ledger.Out, "2025-01-01 11:00 AM"),
	}

	rows := Group(events)
	require.Len(t, rows, 2)
	assert.Equal(t, "B", rows[0].Name)
	assert.Equal(t, "A", rows[1].Name)
}

func TestGroup_SeparateDatesSeparateBuckets(t *testing.T) {
	events := []ledger.Event{
		ev(0, "A", ledger.In, "2025-01-01 9:00 AM"),
		ev(1, "A", ledger.Out, "2025-01-01 5:00 PM"),
		ev(2, "A", ledger.In, "2025-01-02 9:00 AM"),
	}

	rows := Group(events)
	require.Len(t, rows, 2)
	assert.Equal(t, "2025-01-01", rows[0].Date)
	assert.Equal(t, "2025-01-02", rows[1].Date)
}

func TestGroup_OutOfOrderSnapshotStillChronological(t *testing.T) {
	// A backdated entry appended later (larger id, earlier instant) must
	// pair chronologically, not in append order.
	events := []ledger.Event{
		ev(0, "A", ledger.Out, "2025-01-01 12:00 PM"),
		ev(1, "A", ledger.In, "2025-01-01 9:00 AM"),
	}

	rows := Group(events)
	require.Len(t, rows, 1)
	assert.Equal(t, []Interval{{In: "9:00 AM", Out: "12:00 PM"}}, rows[0].Intervals)
}

func TestGroup_FlatAlwaysTenFields(t *testing.T) {
	events := []ledger.Event{
		ev(0, "A", ledger.In, "2025-01-01 9:00 AM"),
		ev(1, "B", ledger.Out, "2025-01-01 9:30 AM"),
		ev(2, "A", ledger.Out, "2025-01-01 10:00 AM"),
		ev(3, "C", ledger.In, "broken"),
	}

	for _, row := range Group(events) {
		assert.Len(t, row.Flat(), 10)
	}
}

func TestGroup_IntervalCountConservedAcrossChunks(t *testing.T) {
	// k intervals produce ceil(k/4) rows whose interval counts sum to k.
	for k := 1; k <= 9; k++ {
		var events []ledger.Event
		for i := 0; i < k; i++ {
			// All INs: every event becomes its own dangling interval.
			events = append(events, ev(i, "A", ledger.In, fmt.Sprintf("2025-01-01 %d:%02d AM", 1+i/60, i%60)))
		}

		rows := Group(events)
		wantRows := (k + MaxIntervals - 1) / MaxIntervals
		require.Len(t, rows, wantRows, "k=%d", k)

		total := 0
		for _, r := range rows {
			total += len(r.Intervals)
		}
		assert.Equal(t, k, total, "k=%d", k)
	}
}

func TestDatesOfAndRowsForDate(t *testing.T) {
	events := []ledger.Event{
		ev(0, "A", ledger.In, "2025-01-02 9:00 AM"),
		ev(1, "B", ledger.In, "2025-01-01 9:00 AM"),
		ev(2, "A", ledger.In, "2025-01-02 10:00 AM"),
	}

	rows := Group(events)
	// 2025-01-01 first: B's event sorts earliest.
	assert.Equal(t, []string{"2025-01-01", "2025-01-02"}, DatesOf(rows))

	jan2 := RowsForDate(rows, "2025-01-02")
	require.Len(t, jan2, 1)
	assert.Equal(t, "A", jan2[0].Name)
}
