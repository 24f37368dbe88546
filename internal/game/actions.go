package game

import "fmt"

// ApplyAction validates and applies one player action. Rejected actions are
// reported in the result and leave the session untouched; the error return
// is reserved for invariant violations and for hands aborted because the
// deck ran out. Folding a player who is already out of the hand succeeds
// without effect. For Raise, amount is the total bet to reach this round;
// it is ignored for the other actions.
func (s *Session) ApplyAction(seat int, action Action, amount int) (ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(seat, action, amount)
}

func (s *Session) apply(seat int, action Action, amount int) (ActionResult, error) {
	if s.failed != nil {
		return rejected(s.failed), s.failed
	}
	if seat < 0 || seat >= len(s.players) {
		return rejected(fmt.Errorf("%w: seat %d", ErrSeatOutOfRange, seat)), nil
	}
	p := s.players[seat]
	if action == Fold && !p.Active {
		return ActionResult{Success: true}, nil
	}
	if !s.inHand {
		return rejected(ErrHandNotInProgress), nil
	}
	if !p.CanAct() {
		return rejected(ErrPlayerInactive), nil
	}
	if seat != s.turn {
		return rejected(fmt.Errorf("%w: seat %d to act", ErrNotYourTurn, s.turn)), nil
	}
	if amount < 0 {
		return rejected(ErrInvalidAmount), nil
	}

	var (
		moved int
		name  string
		err   error
	)
	switch action {
	case Fold:
		p.Active = false
		name = "fold"
	case Check:
		if p.Bet < s.currentBet {
			return rejected(fmt.Errorf("%w: %d to call", ErrCannotCheck, s.currentBet-p.Bet)), nil
		}
		name = "check"
	case Call:
		moved, name = s.call(p)
	case Raise:
		moved, err = s.raise(p, amount)
		name = "raise"
	case AllIn:
		if p.raiseLocked || p.Bet+p.Stack <= s.currentBet {
			moved, name = s.call(p)
		} else {
			moved, err = s.raise(p, p.Bet+p.Stack)
			name = "raise"
		}
	default:
		return rejected(fmt.Errorf("%w: %d", ErrUnknownAction, action)), nil
	}
	if err != nil {
		return rejected(err), nil
	}

	p.HasActed = true
	if s.street == PreFlop && seat == s.bigBlind {
		s.bbOption = false
	}
	s.logAction(p, name, moved)
	s.logger.Debug().
		Int("seat", seat).
		Str("action", name).
		Int("amount", moved).
		Int("pot", s.pot).
		Str("street", s.street.String()).
		Msg("Action applied")

	result := ActionResult{Success: true, BetAmount: moved}
	if err := s.checkChips("action"); err != nil {
		return rejected(err), err
	}
	err = s.progress()
	result.TriggersShowdown = !s.inHand && s.showdown != nil
	return result, err
}

// call matches the current bet, or whatever is left of the stack. With
// nothing owed it is a check.
func (s *Session) call(p *Player) (int, string) {
	owed := s.currentBet - p.Bet
	if owed <= 0 {
		return 0, "check"
	}
	return s.commit(p, owed, MoveCall), "call"
}

// raise brings the player's bet to target. A target below the minimum is
// accepted only as an all-in, and such a short raise does not reopen betting
// for players who have already acted.
func (s *Session) raise(p *Player, target int) (int, error) {
	allIn := p.Bet + p.Stack
	switch {
	case target > allIn:
		return 0, fmt.Errorf("%w: raise to %d with %d available", ErrInsufficientChips, target, allIn)
	case target <= s.currentBet:
		return 0, fmt.Errorf("%w: raise to %d does not exceed %d", ErrRaiseTooSmall, target, s.currentBet)
	case p.raiseLocked:
		return 0, ErrBettingNotReopened
	}
	minTo := s.currentBet + s.minIncrement()
	if target < minTo && target != allIn {
		return 0, fmt.Errorf("%w: raise to %d, minimum %d", ErrRaiseTooSmall, target, minTo)
	}

	previous := s.currentBet
	moved := s.commit(p, target-p.Bet, MoveRaise)
	s.currentBet = target

	full := target >= minTo
	if full {
		s.lastRaise = target - previous
		s.lastRaiser = p.Seat
	}
	for _, o := range s.players {
		if o == p || !o.CanAct() {
			continue
		}
		if full {
			o.raiseLocked = false
		} else if o.HasActed {
			o.raiseLocked = true
		}
		o.HasActed = false
	}
	return moved, nil
}
