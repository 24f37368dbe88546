// Package history keeps a bounded record of completed hands and exports them
// in PHH (poker hand history) TOML format.
package history

import "time"

// Action names used in records beyond the player actions.
const (
	ActionSmallBlind = "post_small_blind"
	ActionBigBlind   = "post_big_blind"
)

// HandRecord is the complete log of one finished hand.
type HandRecord struct {
	SessionID   string
	Hand        int // 1-based hand number within the session
	StartedAt   time.Time
	EndedAt     time.Time
	Dealer      int
	SmallSeat   int
	BigSeat     int
	SmallBlind  int
	BigBlind    int
	Players     []PlayerRecord // dealt-in players in seat order
	Streets     []StreetLog
	Board       []string
	Showdown    []ShowdownEntry // best first
	Pots        []PotRecord
	Uncontested bool // won by everyone else folding
}

// PlayerRecord is a player's view of the hand.
type PlayerRecord struct {
	Seat          int
	Name          string
	StartingStack int
	EndingStack   int
	Won           int // chips received from pots
	Hole          []string
	AI            bool
	Personality   string
}

// StreetLog holds the actions taken on one street.
type StreetLog struct {
	Street  string
	Board   []string // full board as of this street
	Actions []ActionRecord
}

// ActionRecord is a single action. Amount is the chips moved; BetTo is the
// player's total bet for the street afterwards.
type ActionRecord struct {
	Seat   int
	Action string
	Amount int
	BetTo  int
	AllIn  bool
}

// ShowdownEntry is a contender's final hand.
type ShowdownEntry struct {
	Seat        int
	Hole        []string
	Rank        uint32 // lower is stronger
	Category    string
	Description string
	Won         int
}

// PotRecord is a distributed pot.
type PotRecord struct {
	Amount   int
	Winners  []int
	Eligible []int
}

// Net returns each seat's profit or loss for the hand.
func (r HandRecord) Net() map[int]int {
	out := make(map[int]int, len(r.Players))
	for _, p := range r.Players {
		out[p.Seat] = p.EndingStack - p.StartingStack
	}
	return out
}

// Player returns the record for a seat.
func (r HandRecord) Player(seat int) (PlayerRecord, bool) {
	for _, p := range r.Players {
		if p.Seat == seat {
			return p, true
		}
	}
	return PlayerRecord{}, false
}
