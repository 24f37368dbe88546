package game

import (
	"github.com/lox/pokertrainer/internal/ai"
	"github.com/lox/pokertrainer/poker"
)

// SeatConfig describes a seat when the session is created.
type SeatConfig struct {
	Name        string
	Stack       int
	AI          bool
	Personality ai.Personality // used when AI is set
}

// Player represents a seated player. Players are created once per session
// and reset at the start of every hand.
type Player struct {
	Seat        int
	Name        string
	Stack       int
	Bet         int // committed this round
	Invested    int // committed this hand
	Hole        poker.Hand
	Active      bool // dealt in and not folded
	AllIn       bool
	HasActed    bool
	Eliminated  bool // below the table minimum; skipped by rotation
	AI          bool
	Personality ai.Personality

	// set when a short all-in left this player facing a bet it may call but
	// not raise
	raiseLocked bool
}

// CanAct returns true if the player can still make betting decisions.
func (p *Player) CanAct() bool {
	return p.Active && !p.AllIn && p.Stack > 0
}

// owes reports whether the player still has to respond to the current bet.
func (p *Player) owes(currentBet int) bool {
	return p.CanAct() && (!p.HasActed || p.Bet < currentBet)
}

func (p *Player) resetForHand(tableMinimum int) {
	p.Bet = 0
	p.Invested = 0
	p.Hole = 0
	p.AllIn = false
	p.HasActed = false
	p.raiseLocked = false
	p.Eliminated = p.Stack <= 0 || p.Stack < tableMinimum
	p.Active = !p.Eliminated
}

func (p *Player) resetForRound() {
	p.Bet = 0
	p.HasActed = false
	p.raiseLocked = false
}
