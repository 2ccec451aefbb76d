package engine

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomlog/internal/ledger"
)

func TestValidate_FirstInAccepted(t *testing.T) {
	candidate := ledger.Event{ID: 0, Name: "Alice", Action: ledger.In, Timestamp: "2025-01-01 9:00 AM"}
	assert.NoError(t, Validate(candidate, nil))
}

func TestValidate_OutWithoutInRejected(t *testing.T) {
	candidate := ledger.Event{ID: 0, Name: "Alice", Action: ledger.Out, Timestamp: "2025-01-01 9:00 AM"}
	err := Validate(candidate, nil)
	require.Error(t, err)

	var rej *Rejection
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, CodeNotSignedIn, rej.Code)
	assert.Equal(t, "Alice", rej.Name)
	assert.Equal(t, "9:00 AM", rej.Clock)
}

func TestValidate_DoubleInRejected(t *testing.T) {
	history := []ledger.Event{
		{ID: 0, Name: "Alice", Action: ledger.In, Timestamp: "2025-01-01 9:00 AM"},
	}
	candidate := ledger.Event{ID: 1, Name: "Alice", Action: ledger.In, Timestamp: "2025-01-01 10:00 AM"}

	err := Validate(candidate, history)
	var rej *Rejection
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, CodeAlreadySignedIn, rej.Code)
}

func TestValidate_OutAfterInAccepted(t *testing.T) {
	history := []ledger.Event{
		{ID: 0, Name: "Alice", Action: ledger.In, Timestamp: "2025-01-01 9:00 AM"},
	}
	candidate := ledger.Event{ID: 1, Name: "Alice", Action: ledger.Out, Timestamp: "2025-01-01 5:00 PM"}
	assert.NoError(t, Validate(candidate, history))
}

func TestValidate_BackdatedEntryJudgedAtItsOwnInstant(t *testing.T) {
	// Alice signed in at 9 and out at noon. A backdated IN at 10 must be
	// rejected (she was IN then) even though her latest state is OUT.
	history := []ledger.Event{
		{ID: 0, Name: "Alice", Action: ledger.In, Timestamp: "2025-01-01 9:00 AM"},
		{ID: 1, Name: "Alice", Action: ledger.Out, Timestamp: "2025-01-01 12:00 PM"},
	}

	backIn := ledger.Event{ID: 2, Name: "Alice", Action: ledger.In, Timestamp: "2025-01-01 10:00 AM"}
	assert.True(t, IsRejection(Validate(backIn, history)))

	// A backdated OUT at 10 is fine: she was IN at that point.
	backOut := ledger.Event{ID: 2, Name: "Alice", Action: ledger.Out, Timestamp: "2025-01-01 10:00 AM"}
	assert.NoError(t, Validate(backOut, history))

	// An OUT after noon is not: she is already OUT.
	lateOut := ledger.Event{ID: 2, Name: "Alice", Action: ledger.Out, Timestamp: "2025-01-01 1:00 PM"}
	assert.True(t, IsRejection(Validate(lateOut, history)))
}

func TestValidate_ContractViolationIsNotARejection(t *testing.T) {
	missingName := ledger.Event{ID: 0, Action: ledger.In, Timestamp: "2025-01-01 9:00 AM"}
	err := Validate(missingName, nil)
	require.Error(t, err)
	assert.False(t, IsRejection(err))

	badAction := ledger.Event{ID: 0, Name: "Alice", Action: "BOTH", Timestamp: "2025-01-01 9:00 AM"}
	err = Validate(badAction, nil)
	require.Error(t, err)
	assert.False(t, IsRejection(err))
}

func TestIsRejection_WrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("sign attempt failed: %w", NewNotSignedIn("Bob", "8:00 AM"))
	assert.True(t, IsRejection(wrapped))
	assert.False(t, IsRejection(errors.New("disk on fire")))
	assert.False(t, IsRejection(nil))
}

func TestAutoAction_FlipsCurrentState(t *testing.T) {
	now := "2025-01-01 2:00 PM"

	// Nobody signed in yet: scan means IN.
	assert.Equal(t, ledger.In, AutoAction(nil, now))

	history := []ledger.Event{
		{ID: 0, Name: "Alice", Action: ledger.In, Timestamp: "2025-01-01 9:00 AM"},
	}
	assert.Equal(t, ledger.Out, AutoAction(history, now))

	history = append(history, ledger.Event{ID: 1, Name: "Alice", Action: ledger.Out, Timestamp: "2025-01-01 1:00 PM"})
	assert.Equal(t, ledger.In, AutoAction(history, now))
}

func TestAutoAction_DerivedActionAlwaysValidates(t *testing.T) {
	history := []ledger.Event{
		{ID: 0, Name: "Alice", Action: ledger.In, Timestamp: "2025-01-01 9:00 AM"},
	}
	now := "2025-01-01 2:00 PM"

	action := AutoAction(history, now)
	candidate := ledger.Event{ID: 1, Name: "Alice", Action: action, Timestamp: now}
	assert.NoError(t, Validate(candidate, history))
}
