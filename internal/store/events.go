package store

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"roomlog/internal/ledger"
)

// AppendEvent validates shape, assigns the next positional id, and writes
// the event. The assigned event is returned. It is the caller's job to run
// engine.Validate first; the store only enforces value contracts.
func (s *Store) AppendEvent(ctx context.Context, name string, action ledger.Action, timestamp string) (ledger.Event, error) {
	event := ledger.Event{Name: name, Action: action, Timestamp: timestamp}
	if err := event.Validate(); err != nil {
		return ledger.Event{}, fmt.Errorf("append event: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ledger.Event{}, fmt.Errorf("append event: %w", err)
	}
	defer tx.Rollback()

	// id = position in the log = current count.
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM events").Scan(&event.ID); err != nil {
		return ledger.Event{}, fmt.Errorf("append event: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO events (id, name, action, timestamp)
		VALUES (?, ?, ?, ?)
	`, event.ID, event.Name, string(event.Action), event.Timestamp)
	if err != nil {
		return ledger.Event{}, fmt.Errorf("append event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return ledger.Event{}, fmt.Errorf("append event: %w", err)
	}
	return event, nil
}

// Events returns the full event log snapshot in position order.
// Returns an empty slice (not nil) when the log is empty.
func (s *Store) Events(ctx context.Context) ([]ledger.Event, error) {
	return s.queryEvents(ctx, "SELECT id, name, action, timestamp FROM events ORDER BY id ASC")
}

// EventsByDate returns the snapshot of events whose timestamp starts with
// the given "YYYY-MM-DD" date, in position order.
func (s *Store) EventsByDate(ctx context.Context, date string) ([]ledger.Event, error) {
	return s.queryEvents(ctx, `
		SELECT id, name, action, timestamp FROM events
		WHERE timestamp LIKE ? || '%'
		ORDER BY id ASC
	`, date)
}

// EventsForPersonDay returns one person's events for one date, the history
// slice validation runs against.
func (s *Store) EventsForPersonDay(ctx context.Context, name, date string) ([]ledger.Event, error) {
	return s.queryEvents(ctx, `
		SELECT id, name, action, timestamp FROM events
		WHERE name = ? AND timestamp LIKE ? || '%'
		ORDER BY id ASC
	`, name, date)
}

func (s *Store) queryEvents(ctx context.Context, query string, args ...any) ([]ledger.Event, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	events := []ledger.Event{}
	for rows.Next() {
		var e ledger.Event
		var action string
		if err := rows.Scan(&e.ID, &e.Name, &action, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.Action = ledger.Action(action)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

// RemoveEvent deletes the event at the given id and renumbers the rest so
// ids stay contiguous and equal to position. Reports whether an event was
// actually removed.
func (s *Store) RemoveEvent(ctx context.Context, id int) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("remove event: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, "DELETE FROM events WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("remove event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("remove event: %w", err)
	}
	if n == 0 {
		return false, nil
	}

	// Compact: every later event shifts down one position.
	if _, err := tx.ExecContext(ctx, "UPDATE events SET id = id - 1 WHERE id > ?", id); err != nil {
		return false, fmt.Errorf("remove event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("remove event: %w", err)
	}
	return true, nil
}

// SetTimestamp overwrites a single event's timestamp, the only supported
// historical correction. Reports whether the event existed.
func (s *Store) SetTimestamp(ctx context.Context, id int, timestamp string) (bool, error) {
	res, err := s.db.ExecContext(ctx, "UPDATE events SET timestamp = ? WHERE id = ?", timestamp, id)
	if err != nil {
		return false, fmt.Errorf("set timestamp: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("set timestamp: %w", err)
	}
	return n > 0, nil
}

// Dates returns the distinct calendar dates present in the log, newest
// first. Malformed timestamps contribute their whole raw string, same as
// the bucketing rule.
func (s *Store) Dates(ctx context.Context) ([]string, error) {
	events, err := s.Events(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var dates []string
	for _, e := range events {
		d := e.Date()
		if !seen[d] {
			seen[d] = true
			dates = append(dates, d)
		}
	}
	slices.Sort(dates)
	slices.Reverse(dates)
	return dates, nil
}

// ScrubSeconds rewrites legacy timestamps that still carry seconds or a
// zero-padded hour into the current form. Returns the number of events
// updated. Run once at startup.
func (s *Store) ScrubSeconds(ctx context.Context) (int, error) {
	events, err := s.Events(ctx)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("scrub seconds: %w", err)
	}
	defer tx.Rollback()

	updated := 0
	for _, e := range events {
		normalized, changed := ledger.NormalizeTimestamp(e.Timestamp)
		if !changed {
			continue
		}
		if _, err := tx.ExecContext(ctx, "UPDATE events SET timestamp = ? WHERE id = ?", normalized, e.ID); err != nil {
			return 0, fmt.Errorf("scrub seconds: %w", err)
		}
		updated++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("scrub seconds: %w", err)
	}
	return updated, nil
}

// Event returns a single event by id.
func (s *Store) Event(ctx context.Context, id int) (ledger.Event, bool, error) {
	var e ledger.Event
	var action string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, action, timestamp FROM events WHERE id = ?
	`, id).Scan(&e.ID, &e.Name, &action, &e.Timestamp)
	if err == sql.ErrNoRows {
		return ledger.Event{}, false, nil
	}
	if err != nil {
		return ledger.Event{}, false, fmt.Errorf("read event: %w", err)
	}
	e.Action = ledger.Action(action)
	return e, true, nil
}
