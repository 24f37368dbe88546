package game

import (
	"errors"
	"fmt"
)

// ErrInvalidAction is the parent of every rejected action. Rejected actions
// are reported in ActionResult and never change session state.
var ErrInvalidAction = errors.New("invalid action")

var (
	ErrNotYourTurn        = fmt.Errorf("%w: not your turn", ErrInvalidAction)
	ErrPlayerInactive     = fmt.Errorf("%w: player is not active", ErrInvalidAction)
	ErrSeatOutOfRange     = fmt.Errorf("%w: seat out of range", ErrInvalidAction)
	ErrRaiseTooSmall      = fmt.Errorf("%w: raise below minimum", ErrInvalidAction)
	ErrInsufficientChips  = fmt.Errorf("%w: insufficient chips", ErrInvalidAction)
	ErrCannotCheck        = fmt.Errorf("%w: cannot check facing a bet", ErrInvalidAction)
	ErrBettingNotReopened = fmt.Errorf("%w: betting was not reopened", ErrInvalidAction)
	ErrInvalidAmount      = fmt.Errorf("%w: amount must not be negative", ErrInvalidAction)
	ErrUnknownAction      = fmt.Errorf("%w: unknown action", ErrInvalidAction)
	ErrHandNotInProgress  = fmt.Errorf("%w: no hand in progress", ErrInvalidAction)
)

var (
	ErrHandInProgress   = errors.New("hand already in progress")
	ErrNotEnoughPlayers = errors.New("not enough players with chips")
	ErrSessionFailed    = errors.New("session failed")
	ErrNoContenders     = errors.New("pot has no contenders")
)

// Engine defects. These are returned as errors and stop the session.
var (
	ErrChipConservation = errors.New("chip conservation violated")
	ErrNegativeBalance  = errors.New("negative balance")
	ErrStateInvariant   = errors.New("state invariant violated")
)

// InvariantError describes a failed consistency check.
type InvariantError struct {
	Check  string // which check failed, e.g. "conservation"
	Detail string
	Err    error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant %s: %s: %v", e.Check, e.Detail, e.Err)
}

func (e *InvariantError) Unwrap() error {
	return e.Err
}
