package game

import (
	"fmt"

	"github.com/lox/pokertrainer/internal/history"
	"github.com/lox/pokertrainer/poker"
)

// progress moves the hand forward after an action: settle when one
// contender remains, close the round when everyone has responded, otherwise
// pass the turn on.
func (s *Session) progress() error {
	if s.contenders() <= 1 {
		return s.settle()
	}
	if s.roundComplete() {
		return s.completeRound()
	}
	s.turn = s.nextSeat(s.turn, s.owes)
	return s.checkInvariants("turn")
}

func (s *Session) owes(p *Player) bool {
	return p.owes(s.currentBet)
}

func (s *Session) contenders() int {
	n := 0
	for _, p := range s.players {
		if p.Active {
			n++
		}
	}
	return n
}

func (s *Session) canAct() int {
	n := 0
	for _, p := range s.players {
		if p.CanAct() {
			n++
		}
	}
	return n
}

// roundComplete reports whether betting on this street is closed.
func (s *Session) roundComplete() bool {
	var lone *Player
	pending := false
	count := 0
	for _, p := range s.players {
		if !p.CanAct() {
			continue
		}
		count++
		lone = p
		if s.owes(p) {
			pending = true
		}
	}
	switch {
	case count == 0:
		return true
	case count == 1 && lone.Bet >= s.currentBet:
		// nobody left to bet against
		return true
	case s.street == PreFlop && s.bbOption:
		return false
	}
	return !pending
}

// completeRound resets the round and deals the next street. With at most one
// player able to bet, the remaining board is dealt straight to showdown.
func (s *Session) completeRound() error {
	for _, p := range s.players {
		p.resetForRound()
	}
	s.currentBet = 0
	s.lastRaise = 0
	s.lastRaiser = -1
	s.bbOption = false
	s.turn = -1

	if s.street == River {
		return s.settle()
	}
	if s.canAct() <= 1 {
		for s.street < River {
			if err := s.dealStreet(); err != nil {
				return s.abort(err)
			}
		}
		return s.settle()
	}

	if err := s.dealStreet(); err != nil {
		return s.abort(err)
	}
	s.turn = s.nextSeat(s.dealer, s.owes)
	return s.checkInvariants("street")
}

// dealStreet burns and deals the next street's cards and advances the
// street.
func (s *Session) dealStreet() error {
	var cards []poker.Card
	switch s.street {
	case PreFlop:
		flop, err := s.deck.DealFlop()
		if err != nil {
			return fmt.Errorf("dealing flop: %w", err)
		}
		cards = flop
	case Flop:
		card, err := s.deck.DealTurn()
		if err != nil {
			return fmt.Errorf("dealing turn: %w", err)
		}
		cards = []poker.Card{card}
	case Turn:
		card, err := s.deck.DealRiver()
		if err != nil {
			return fmt.Errorf("dealing river: %w", err)
		}
		cards = []poker.Card{card}
	default:
		return fmt.Errorf("%w: no street after %s", ErrStateInvariant, s.street)
	}

	s.board = append(s.board, cards...)
	s.street++
	if s.record != nil {
		s.record.Streets = append(s.record.Streets, history.StreetLog{
			Street: s.street.String(),
			Board:  cardStrings(s.board),
		})
	}
	s.logger.Debug().
		Int("hand", s.hands).
		Str("street", s.street.String()).
		Str("board", s.boardHand().String()).
		Msg("Street dealt")
	return nil
}
