package engine

import "roomlog/internal/ledger"

// Validate checks a candidate event against the person's existing events
// for the same day. The state is resolved at the candidate's own timestamp,
// not at "now": a backdated manual entry is judged as if it were inserted
// at that point in the timeline.
//
// Returns nil on accept, a *Rejection on refusal, or a plain error when the
// candidate itself is out of contract (missing name, unknown action).
func Validate(candidate ledger.Event, history []ledger.Event) error {
	if err := candidate.Validate(); err != nil {
		return err
	}

	prior := StateAt(history, candidate.Timestamp)
	clock := ledger.ClockOf(candidate.Timestamp)

	// Rule 1: cannot sign OUT unless signed IN at that instant.
	if candidate.Action == ledger.Out && prior != ledger.In {
		return NewNotSignedIn(candidate.Name, clock)
	}

	// Rule 2: cannot sign IN while already signed IN at that instant.
	if candidate.Action == ledger.In && prior == ledger.In {
		return NewAlreadySignedIn(candidate.Name, clock)
	}

	return nil
}

// AutoAction derives the next action for the card-scan path: whatever flips
// the state that holds at now. The scan path always stamps the current
// instant, so resolving against "now" and against the candidate's own
// timestamp coincide; the result still goes through Validate as a check
// against the resolver ever disagreeing with the scan.
func AutoAction(history []ledger.Event, now string) ledger.Action {
	return StateAt(history, now).Opposite()
}
