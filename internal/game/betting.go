package game

import (
	"fmt"
	"strings"
)

// Street represents the betting round
type Street int

const (
	PreFlop Street = iota
	Flop
	Turn
	River
	Showdown
)

func (s Street) String() string {
	if s < PreFlop || s > Showdown {
		return "unknown"
	}
	return [...]string{"preflop", "flop", "turn", "river", "showdown"}[s]
}

// Action represents a player action
type Action int

const (
	Fold Action = iota
	Check
	Call
	Raise
	AllIn
)

func (a Action) String() string {
	if a < Fold || a > AllIn {
		return "unknown"
	}
	return [...]string{"fold", "check", "call", "raise", "allin"}[a]
}

// ParseAction accepts the names produced by Action.String plus "bet" as a
// synonym for raise.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fold":
		return Fold, nil
	case "check":
		return Check, nil
	case "call":
		return Call, nil
	case "raise", "bet":
		return Raise, nil
	case "allin", "all-in", "all_in":
		return AllIn, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// ActionResult reports the outcome of ApplyAction. Err is set exactly when
// Success is false.
type ActionResult struct {
	Success          bool
	Err              error
	BetAmount        int // chips moved from the stack by this action
	TriggersShowdown bool
}

func rejected(err error) ActionResult {
	return ActionResult{Err: err}
}
