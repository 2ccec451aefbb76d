package store

import (
	"context"
	"fmt"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"roomlog/internal/ledger"
)

// Roster returns the known names, collated for display.
func (s *Store) Roster(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM roster")
	if err != nil {
		return nil, fmt.Errorf("query roster: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan roster: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate roster: %w", err)
	}

	// Language-aware ordering rather than byte order, so accented names
	// don't sink to the bottom of the sign-in form.
	collate.New(language.English).SortStrings(names)
	return names, nil
}

// AddName adds a name to the roster. Names are NFC-normalized before
// storage; adding an existing name is a no-op.
func (s *Store) AddName(ctx context.Context, name string) error {
	name = ledger.NormalizeName(name)
	if name == "" {
		return fmt.Errorf("add name: name is required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO roster (name) VALUES (?)
		ON CONFLICT(name) DO NOTHING
	`, name)
	if err != nil {
		return fmt.Errorf("add name: %w", err)
	}
	return nil
}

// RemoveName removes a name from the roster. Reports whether it existed.
// Events already recorded under the name are left alone.
func (s *Store) RemoveName(ctx context.Context, name string) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM roster WHERE name = ?", ledger.NormalizeName(name))
	if err != nil {
		return false, fmt.Errorf("remove name: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("remove name: %w", err)
	}
	return n > 0, nil
}

// SeedRoster inserts the given names only when the roster is empty, so a
// fresh database starts with a usable sign-in form.
func (s *Store) SeedRoster(ctx context.Context, names []string) error {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM roster").Scan(&count); err != nil {
		return fmt.Errorf("seed roster: %w", err)
	}
	if count > 0 {
		return nil
	}
	for _, name := range names {
		if err := s.AddName(ctx, name); err != nil {
			return err
		}
	}
	return nil
}
