package entities

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrQuoteExpired      = errors.New("quote expired")
	ErrStopNotFound      = errors.New("stop not found")
	ErrDuplicateStop     = errors.New("customer already on route")
	ErrInvalidStopOrder  = errors.New("invalid stop order")
	ErrPoolNotFound      = errors.New("pool not found")
	ErrNotEditable       = errors.New("record cannot be edited in its current status")
	ErrInvalidPayment    = errors.New("invalid payment amount")
)

// TransitionError describes a rejected status change. It matches
// ErrInvalidTransition with errors.Is.
type TransitionError struct {
	Entity string
	ID     string
	From   string
	To     string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s %s: cannot move from %s to %s", e.Entity, e.ID, e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

func transitionError[S ~string](entity, id string, from, to S) error {
	return &TransitionError{Entity: entity, ID: id, From: string(from), To: string(to)}
}

func notEditable[S ~string](entity, id string, status S) error {
	return fmt.Errorf("%w: %s %s is %s", ErrNotEditable, entity, id, status)
}
