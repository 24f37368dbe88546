package game

import (
	"github.com/lox/pokertrainer/internal/ai"
	"github.com/lox/pokertrainer/poker"
)

// PlayerView is a player as seen by one viewer.
type PlayerView struct {
	Seat         int
	Name         string
	Stack        int
	Bet          int
	Invested     int
	Hole         poker.Hand // zero when hidden from the viewer
	HoleHidden   bool
	Active       bool
	AllIn        bool
	HasActed     bool
	Eliminated   bool
	AI           bool
	Personality  ai.Personality
	IsDealer     bool
	IsSmallBlind bool
	IsBigBlind   bool
}

// ToCall returns the chips this player needs to match the current bet.
func (v PlayerView) ToCall(currentBet int) int {
	return max(0, min(currentBet-v.Bet, v.Stack))
}

// Snapshot is a copy of the table as one seat sees it.
type Snapshot struct {
	SessionID  string
	HandCount  int
	Street     Street
	Board      []poker.Card
	Pot        int
	CurrentBet int
	MinRaiseTo int
	Dealer     int
	SmallBlind int
	BigBlind   int
	Turn       int // -1 when nobody is to act
	Blinds     BlindLevel
	Players    []PlayerView
	InProgress bool
}

// Snapshot returns the table as viewerSeat sees it. Other players' hole
// cards are hidden until showdown, when every player who did not fold
// reveals. A viewer of -1 sees no hole cards before showdown.
func (s *Session) Snapshot(viewerSeat int) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(viewerSeat)
}

func (s *Session) snapshot(viewer int) Snapshot {
	snap := Snapshot{
		SessionID:  s.id,
		HandCount:  s.hands,
		Street:     s.street,
		Board:      append([]poker.Card(nil), s.board...),
		Pot:        s.pot,
		CurrentBet: s.currentBet,
		MinRaiseTo: s.currentBet + s.minIncrement(),
		Dealer:     s.dealer,
		SmallBlind: s.smallBlind,
		BigBlind:   s.bigBlind,
		Turn:       s.turn,
		Blinds:     s.level,
		InProgress: s.inHand,
		Players:    make([]PlayerView, len(s.players)),
	}
	for i, p := range s.players {
		snap.Players[i] = s.view(p, viewer)
	}
	return snap
}

func (s *Session) view(p *Player, viewer int) PlayerView {
	v := PlayerView{
		Seat:         p.Seat,
		Name:         p.Name,
		Stack:        p.Stack,
		Bet:          p.Bet,
		Invested:     p.Invested,
		Hole:         p.Hole,
		Active:       p.Active,
		AllIn:        p.AllIn,
		HasActed:     p.HasActed,
		Eliminated:   p.Eliminated,
		AI:           p.AI,
		Personality:  p.Personality,
		IsDealer:     p.Seat == s.dealer,
		IsSmallBlind: p.Seat == s.smallBlind,
		IsBigBlind:   p.Seat == s.bigBlind,
	}
	revealed := p.Seat == viewer || (s.street == Showdown && p.Active && s.showdown != nil && !s.showdown.Uncontested)
	if !revealed && p.Hole != 0 {
		v.Hole = 0
		v.HoleHidden = true
	}
	return v
}

// CurrentPlayer returns the player to act, with their own cards visible.
func (s *Session) CurrentPlayer() (PlayerView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.inHand || s.turn < 0 {
		return PlayerView{}, false
	}
	return s.view(s.players[s.turn], s.turn), true
}
