// Package app wires the store and the reconciliation engine into the
// operations the web UI and CLI share: recording sign-ins, card scans, and
// building filtered export rows.
package app

import (
	"context"
	"fmt"
	"time"

	"roomlog/internal/engine"
	"roomlog/internal/ledger"
	"roomlog/internal/store"
)

// Clock supplies "now". The engine itself never reads a clock; only the
// paths that stamp new events do, and they take it from here so tests can
// pin the instant.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Service exposes the ledger operations over one store and one clock.
type Service struct {
	Store *store.Store
	Clock Clock
}

// New creates a Service on the system clock.
func New(st *store.Store) *Service {
	return &Service{Store: st, Clock: SystemClock{}}
}

// Today returns the current calendar date in stored form.
func (s *Service) Today() string {
	return s.Clock.Now().Format("2006-01-02")
}

// SignManual records a sign-in/out for name. With clock24 empty the event
// is stamped at the current instant; otherwise clock24 is an "HH:MM"
// 24-hour time on today's date (the manual-entry path). Validation runs
// against the state at the candidate's own timestamp, so backdated manual
// entries are judged in place.
//
// Returns the appended event, or a *engine.Rejection when the rules refuse
// it.
func (s *Service) SignManual(ctx context.Context, name string, action ledger.Action, clock24 string) (ledger.Event, error) {
	name = ledger.NormalizeName(name)
	now := s.Clock.Now()
	date := now.Format("2006-01-02")

	clock := ledger.Clock12(now)
	if clock24 != "" {
		converted, err := ledger.FromClock24(clock24)
		if err != nil {
			return ledger.Event{}, fmt.Errorf("invalid manual time %q: %w", clock24, err)
		}
		clock = converted
	}
	timestamp := date + " " + clock

	history, err := s.Store.EventsForPersonDay(ctx, name, date)
	if err != nil {
		return ledger.Event{}, err
	}

	candidate := ledger.Event{ID: nextID(history), Name: name, Action: action, Timestamp: timestamp}
	if err := engine.Validate(candidate, history); err != nil {
		return ledger.Event{}, err
	}

	return s.Store.AppendEvent(ctx, name, action, timestamp)
}

// Scan resolves a card to its name and records whichever action flips the
// person's current state. A registry miss surfaces the store's
// ErrCardNotRegistered unchanged - it is not a validation rejection.
func (s *Service) Scan(ctx context.Context, cardID string) (ledger.Event, error) {
	name, err := s.Store.CardName(ctx, cardID)
	if err != nil {
		return ledger.Event{}, err
	}

	now := s.Clock.Now()
	date := now.Format("2006-01-02")
	timestamp := ledger.Timestamp(now)

	history, err := s.Store.EventsForPersonDay(ctx, name, date)
	if err != nil {
		return ledger.Event{}, err
	}

	action := engine.AutoAction(history, timestamp)

	// The derived action should always validate; the check stays in case
	// the resolver ever disagrees with the scan.
	candidate := ledger.Event{ID: nextID(history), Name: name, Action: action, Timestamp: timestamp}
	if err := engine.Validate(candidate, history); err != nil {
		return ledger.Event{}, err
	}

	return s.Store.AppendEvent(ctx, name, action, timestamp)
}

// nextID picks a candidate id above every id in the snapshot, so the
// instant tie-break treats the candidate as the latest entry.
func nextID(history []ledger.Event) int {
	next := 0
	for _, e := range history {
		if e.ID >= next {
			next = e.ID + 1
		}
	}
	return next
}

// TodayRows groups today's events for the front page.
func (s *Service) TodayRows(ctx context.Context) ([]engine.Row, error) {
	events, err := s.Store.EventsByDate(ctx, s.Today())
	if err != nil {
		return nil, err
	}
	return engine.Group(events), nil
}

// FilteredEvents returns the event snapshot narrowed by the optional
// filters: a single date, or the Mon-Fri working week containing weekDate.
// The returned scope names the filter for export filenames: the date,
// "<monday>_to_<friday>", or "" for the full log.
func (s *Service) FilteredEvents(ctx context.Context, date, weekDate string) ([]ledger.Event, string, error) {
	switch {
	case date != "":
		events, err := s.Store.EventsByDate(ctx, date)
		return events, date, err
	case weekDate != "":
		monday, friday, err := ledger.WeekRange(weekDate)
		if err != nil {
			return nil, "", fmt.Errorf("invalid week date %q: %w", weekDate, err)
		}
		all, err := s.Store.Events(ctx)
		if err != nil {
			return nil, "", err
		}
		events := []ledger.Event{}
		for _, e := range all {
			if ledger.DateInRange(e.Date(), monday, friday) {
				events = append(events, e)
			}
		}
		return events, monday + "_to_" + friday, nil
	default:
		events, err := s.Store.Events(ctx)
		return events, "", err
	}
}

// FilteredRows groups the filtered snapshot into export rows.
func (s *Service) FilteredRows(ctx context.Context, date, weekDate string) ([]engine.Row, string, error) {
	events, scope, err := s.FilteredEvents(ctx, date, weekDate)
	if err != nil {
		return nil, "", err
	}
	return engine.Group(events), scope, nil
}
