package engine

import (
	"errors"
	"fmt"
)

// Rejection is a refused sign-in/out attempt. It is expected business
// logic, not a system fault: callers surface the message to the person at
// the door and move on.
type Rejection struct {
	// Code identifies the rule that fired.
	Code RejectionCode

	// Name is the identity the attempt was for.
	Name string

	// Clock is the display-form time of the attempt.
	Clock string
}

// RejectionCode categorizes rejections.
type RejectionCode string

const (
	// CodeNotSignedIn rejects an OUT when the person is not signed IN at
	// that instant.
	CodeNotSignedIn RejectionCode = "NOT_SIGNED_IN"

	// CodeAlreadySignedIn rejects an IN when the person is already signed
	// IN at that instant.
	CodeAlreadySignedIn RejectionCode = "ALREADY_SIGNED_IN"
)

// Error implements the error interface.
func (e *Rejection) Error() string {
	switch e.Code {
	case CodeNotSignedIn:
		return fmt.Sprintf("%s cannot sign OUT at %s because they are not signed IN at that time", e.Name, e.Clock)
	case CodeAlreadySignedIn:
		return fmt.Sprintf("%s is already signed IN at %s and cannot sign in again at that time", e.Name, e.Clock)
	default:
		return fmt.Sprintf("%s: sign attempt at %s rejected", e.Name, e.Clock)
	}
}

// IsRejection reports whether err is a validation rejection.
// Uses errors.As to handle wrapped errors.
func IsRejection(err error) bool {
	var r *Rejection
	return errors.As(err, &r)
}

// NewNotSignedIn creates a Rejection for rule 1 (OUT without IN).
func NewNotSignedIn(name, clock string) *Rejection {
	return &Rejection{Code: CodeNotSignedIn, Name: name, Clock: clock}
}

// NewAlreadySignedIn creates a Rejection for rule 2 (IN while IN).
func NewAlreadySignedIn(name, clock string) *Rejection {
	return &Rejection{Code: CodeAlreadySignedIn, Name: name, Clock: clock}
}
