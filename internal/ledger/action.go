package ledger

import "fmt"

// Action is the closed two-value set of things an event can record.
type Action string

const (
	// In records a sign-in.
	In Action = "IN"

	// Out records a sign-out.
	Out Action = "OUT"
)

// ParseAction converts a raw action string into an Action.
// Only the exact values "IN" and "OUT" are accepted.
func ParseAction(raw string) (Action, error) {
	switch Action(raw) {
	case In:
		return In, nil
	case Out:
		return Out, nil
	default:
		return "", fmt.Errorf("invalid action %q: must be IN or OUT", raw)
	}
}

// Opposite returns the other action. Used by the card-scan path to derive
// the next action from the current state.
func (a Action) Opposite() Action {
	if a == In {
		return Out
	}
	return In
}
