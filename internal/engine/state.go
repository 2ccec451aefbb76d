package engine

import "roomlog/internal/ledger"

// StateAt computes the IN/OUT state that holds immediately after applying
// every event whose instant is <= at, in total order. The boundary is
// inclusive: the state "at" an event's own timestamp already includes that
// event's effect, and when two events share an instant the larger id wins.
//
// events must all belong to one person; with zero qualifying events the
// state is OUT.
func StateAt(events []ledger.Event, at string) ledger.Action {
	target := ledger.ParseStamp(at)
	state := ledger.Out
	for _, e := range ledger.SortedEvents(events) {
		if e.Stamp().Compare(target) > 0 {
			break
		}
		state = e.Action
	}
	return state
}
