package game

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// checkInvariants verifies the session after a state change, including
// that the seat to act can act. Any violation stops the session.
func (s *Session) checkInvariants(stage string) error {
	if err := s.checkChips(stage); err != nil {
		return err
	}
	if s.inHand && s.turn >= 0 {
		if s.turn >= len(s.players) || !s.players[s.turn].CanAct() {
			return s.fail(stage, &InvariantError{
				Check:  "turn",
				Detail: fmt.Sprintf("seat %d cannot act", s.turn),
				Err:    ErrStateInvariant,
			})
		}
	}
	return nil
}

// checkChips verifies conservation and the all-in flags. It is safe to run
// while the turn still points at a player who has just folded or gone
// all-in.
func (s *Session) checkChips(stage string) error {
	if err := s.ledger.Verify(s.players, s.pot); err != nil {
		return s.fail(stage, err)
	}
	for _, p := range s.players {
		if p.AllIn && p.Stack != 0 {
			return s.fail(stage, &InvariantError{
				Check:  "all-in",
				Detail: fmt.Sprintf("seat %d is all-in with %d behind", p.Seat, p.Stack),
				Err:    ErrStateInvariant,
			})
		}
		if s.inHand && p.Active && p.Stack == 0 && p.Invested > 0 && !p.AllIn {
			return s.fail(stage, &InvariantError{
				Check:  "all-in",
				Detail: fmt.Sprintf("seat %d has no chips but is not all-in", p.Seat),
				Err:    ErrStateInvariant,
			})
		}
	}
	return nil
}

// fail records a fatal error, logs the full table state and stops the
// session.
func (s *Session) fail(stage string, err error) error {
	if s.failed != nil {
		return s.failed
	}
	s.failed = fmt.Errorf("%w after %s: %w", ErrSessionFailed, stage, err)
	s.inHand = false
	s.turn = -1

	var inv *InvariantError
	event := s.logger.Error().Err(err).Str("stage", stage).Int("hand", s.hands)
	if errors.As(err, &inv) {
		event = event.Str("check", inv.Check)
	}
	event.
		Str("street", s.street.String()).
		Int("pot", s.pot).
		Int("current_bet", s.currentBet).
		Int("total", s.ledger.Total()).
		Array("players", playerArray(s.players)).
		Msg("Invariant violated, session stopped")
	return s.failed
}

type playerArray []*Player

func (a playerArray) MarshalZerologArray(arr *zerolog.Array) {
	for _, p := range a {
		arr.Dict(zerolog.Dict().
			Int("seat", p.Seat).
			Int("stack", p.Stack).
			Int("bet", p.Bet).
			Int("invested", p.Invested).
			Bool("active", p.Active).
			Bool("all_in", p.AllIn))
	}
}
