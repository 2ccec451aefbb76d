package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"roomlog/internal/ledger"
)

// ErrCardNotRegistered is returned when a scanned card id has no name
// linked to it. It is a distinct condition from a validation rejection:
// the fix is registering the card, not signing differently.
var ErrCardNotRegistered = errors.New("card not registered")

// Card is one entry in the card registry.
type Card struct {
	ID   string `json:"card_id"`
	Name string `json:"name"`
}

// CardName resolves a scanned card id to the linked name.
// Returns ErrCardNotRegistered on a miss.
func (s *Store) CardName(ctx context.Context, cardID string) (string, error) {
	cardID = strings.TrimSpace(cardID)
	var name string
	err := s.db.QueryRowContext(ctx, "SELECT name FROM cards WHERE card_id = ?", cardID).Scan(&name)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("card %q: %w", cardID, ErrCardNotRegistered)
	}
	if err != nil {
		return "", fmt.Errorf("lookup card: %w", err)
	}
	return name, nil
}

// LinkCard associates a card id with a name, replacing any prior link for
// that card.
func (s *Store) LinkCard(ctx context.Context, cardID, name string) error {
	cardID = strings.TrimSpace(cardID)
	name = ledger.NormalizeName(name)
	if cardID == "" || name == "" {
		return fmt.Errorf("link card: card id and name are required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cards (card_id, name) VALUES (?, ?)
		ON CONFLICT(card_id) DO UPDATE SET name = excluded.name
	`, cardID, name)
	if err != nil {
		return fmt.Errorf("link card: %w", err)
	}
	return nil
}

// UnlinkCard removes a card association. Reports whether it existed.
func (s *Store) UnlinkCard(ctx context.Context, cardID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM cards WHERE card_id = ?", strings.TrimSpace(cardID))
	if err != nil {
		return false, fmt.Errorf("unlink card: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("unlink card: %w", err)
	}
	return n > 0, nil
}

// Cards lists the registry in card-id order.
func (s *Store) Cards(ctx context.Context) ([]Card, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT card_id, name FROM cards ORDER BY card_id ASC")
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	defer rows.Close()

	cards := []Card{}
	for rows.Next() {
		var c Card
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cards: %w", err)
	}
	return cards, nil
}
