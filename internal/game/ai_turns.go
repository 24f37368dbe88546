package game

import (
	"fmt"

	"github.com/lox/pokertrainer/internal/ai"
)

// StepAI plays one turn for the AI seat to act. It reports false when no
// hand is running or the player to act is human. A decision the table
// rejects falls back to checking or calling, and finally to folding.
func (s *Session) StepAI() (ActionResult, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failed != nil {
		return rejected(s.failed), false, s.failed
	}
	if !s.inHand || s.turn < 0 || !s.players[s.turn].AI {
		return ActionResult{}, false, nil
	}

	p := s.players[s.turn]
	d := s.ai.Decide(p.Personality, s.situation(p))
	action, amount := s.translate(p, d)

	res, err := s.apply(p.Seat, action, amount)
	if err != nil || res.Success {
		return res, true, err
	}
	s.logger.Warn().
		Err(res.Err).
		Int("seat", p.Seat).
		Str("decision", d.Action.String()).
		Int("amount", d.Amount).
		Msg("AI decision rejected, falling back")

	fallback := Call
	if p.Bet >= s.currentBet {
		fallback = Check
	}
	res, err = s.apply(p.Seat, fallback, 0)
	if err != nil || res.Success {
		return res, true, err
	}
	res, err = s.apply(p.Seat, Fold, 0)
	return res, true, err
}

// RunAI plays AI turns until a human must act or the hand ends, and returns
// how many actions were taken.
func (s *Session) RunAI() (int, error) {
	n := 0
	for {
		res, acted, err := s.StepAI()
		if err != nil {
			return n, err
		}
		if !acted {
			return n, nil
		}
		if !res.Success {
			return n, fmt.Errorf("AI turn failed: %w", res.Err)
		}
		n++
	}
}

func (s *Session) situation(p *Player) ai.Situation {
	return ai.Situation{
		Hole:       p.Hole,
		Board:      s.boardHand(),
		CurrentBet: s.currentBet,
		Pot:        s.pot,
		Stack:      p.Stack,
		PlayerBet:  p.Bet,
		BigBlind:   s.level.Big,
		MinRaise:   s.minIncrement(),
	}
}

// translate turns a decision into a table action, clamping raises into the
// legal range.
func (s *Session) translate(p *Player, d ai.Decision) (Action, int) {
	passive := Call
	if p.Bet >= s.currentBet {
		passive = Check
	}
	switch d.Action {
	case ai.Fold:
		return Fold, 0
	case ai.Raise:
		maxTo := p.Bet + p.Stack
		if p.raiseLocked || maxTo <= s.currentBet {
			return passive, 0
		}
		target := max(d.Amount, s.currentBet+s.minIncrement())
		return Raise, min(target, maxTo)
	default:
		return passive, 0
	}
}
