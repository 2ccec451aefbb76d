package engine

import "roomlog/internal/ledger"

// MaxIntervals is the number of IN/OUT interval slots per row. A bucket
// with more intervals spills onto additional rows for the same (name, date).
const MaxIntervals = 4

// Interval is one IN/OUT pair in display form. At most one side may be
// empty - a dangling pair from an unmatched event; both empty never occurs.
type Interval struct {
	In  string
	Out string
}

// Row is the unit of tabular output: up to MaxIntervals intervals for one
// (name, date) bucket. Date keeps the canonical "YYYY-MM-DD" key for
// per-date fan-out; Display carries the rendered form ("Apr. 15").
type Row struct {
	Name      string
	Date      string
	Display   string
	Intervals []Interval
}

// FlatHeader is the column header matching Row.Flat.
var FlatHeader = []string{
	"Name", "Date",
	"Time In", "Time Out",
	"Time In", "Time Out",
	"Time In", "Time Out",
	"Time In", "Time Out",
}

// Flat renders the row in the 10-field shape every exporter consumes:
// name, display date, then four In/Out pairs padded with empty strings.
func (r Row) Flat() []string {
	flat := make([]string, 0, 2+2*MaxIntervals)
	flat = append(flat, r.Name, r.Display)
	for _, iv := range r.Intervals {
		flat = append(flat, iv.In, iv.Out)
	}
	for len(flat) < 2+2*MaxIntervals {
		flat = append(flat, "")
	}
	return flat
}

type bucketKey struct {
	name string
	date string
}

// Group collapses a flat event stream into rows of paired intervals.
//
// Events are put in total order, partitioned into (name, date) buckets that
// preserve that order, paired with a single pending-IN scan, and chunked
// into rows of at most MaxIntervals. Rows emit in bucket-first-seen order
// from the sorted stream; they are not re-sorted by name or date afterward.
func Group(events []ledger.Event) []Row {
	sorted := ledger.SortedEvents(events)

	var order []bucketKey
	buckets := make(map[bucketKey][]ledger.Event)
	for _, e := range sorted {
		key := bucketKey{name: e.Name, date: e.Date()}
		if _, seen := buckets[key]; !seen {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], e)
	}

	var rows []Row
	for _, key := range order {
		intervals := pairIntervals(buckets[key])
		display := ledger.DisplayDate(key.date)
		for start := 0; start < len(intervals); start += MaxIntervals {
			end := min(start+MaxIntervals, len(intervals))
			rows = append(rows, Row{
				Name:      key.name,
				Date:      key.date,
				Display:   display,
				Intervals: intervals[start:end],
			})
		}
	}
	return rows
}

// pairIntervals runs the pending-IN scan over one bucket's ordered events.
// An IN with an IN already pending flushes the prior one as a dangling
// pair; an OUT with nothing pending emits a dangling OUT; a pending IN left
// at the end flushes as a final dangling pair.
func pairIntervals(events []ledger.Event) []Interval {
	var intervals []Interval
	pendingIn := ""
	havePending := false

	for _, e := range events {
		clock := ledger.ClockOf(e.Timestamp)
		switch e.Action {
		case ledger.In:
			if havePending {
				intervals = append(intervals, Interval{In: pendingIn})
			}
			pendingIn = clock
			havePending = true
		case ledger.Out:
			if havePending {
				intervals = append(intervals, Interval{In: pendingIn, Out: clock})
				pendingIn = ""
				havePending = false
			} else {
				intervals = append(intervals, Interval{Out: clock})
			}
		}
	}

	if havePending {
		intervals = append(intervals, Interval{In: pendingIn})
	}
	return intervals
}

// DatesOf returns the distinct canonical dates covered by rows, in the
// order the dates first appear. Used for per-date sheet fan-out.
func DatesOf(rows []Row) []string {
	var dates []string
	seen := make(map[string]bool)
	for _, r := range rows {
		if !seen[r.Date] {
			seen[r.Date] = true
			dates = append(dates, r.Date)
		}
	}
	return dates
}

// RowsForDate filters rows down to one canonical date, preserving order.
func RowsForDate(rows []Row, date string) []Row {
	var out []Row
	for _, r := range rows {
		if r.Date == date {
			out = append(out, r)
		}
	}
	return out
}
