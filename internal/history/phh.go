package history

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
)

// PHHVariant is the PHH code for no-limit Texas hold'em.
const PHHVariant = "NT"

// PHH is a single hand in PHH TOML layout.
type PHH struct {
	Variant           string   `toml:"variant"`
	Table             string   `toml:"table,omitempty"`
	SeatCount         int      `toml:"seat_count,omitempty"`
	Seats             []int    `toml:"seats,omitempty"`
	Antes             []int    `toml:"antes"`
	BlindsOrStraddles []int    `toml:"blinds_or_straddles"`
	MinBet            int      `toml:"min_bet"`
	StartingStacks    []int    `toml:"starting_stacks"`
	FinishingStacks   []int    `toml:"finishing_stacks,omitempty"`
	Winnings          []int    `toml:"winnings,omitempty"`
	Actions           []string `toml:"actions"`
	Players           []string `toml:"players,omitempty"`
	HandID            string   `toml:"hand"`
	Time              string   `toml:"time,omitempty"`
	TimeZone          string   `toml:"time_zone,omitempty"`
	Day               int      `toml:"day,omitempty"`
	Month             int      `toml:"month,omitempty"`
	Year              int      `toml:"year,omitempty"`
}

// ToPHH converts a record. Players are numbered p1.. clockwise from the seat
// after the dealer, so p1 is the small blind except heads-up.
func ToPHH(r HandRecord) *PHH {
	players := phhOrder(r)
	index := make(map[int]int, len(players))
	for i, p := range players {
		index[p.Seat] = i
	}

	h := &PHH{
		Variant:           PHHVariant,
		Table:             r.SessionID,
		SeatCount:         len(players),
		Seats:             make([]int, len(players)),
		Antes:             make([]int, len(players)),
		BlindsOrStraddles: make([]int, len(players)),
		MinBet:            r.BigBlind,
		StartingStacks:    make([]int, len(players)),
		FinishingStacks:   make([]int, len(players)),
		Winnings:          make([]int, len(players)),
		Players:           make([]string, len(players)),
		HandID:            fmt.Sprintf("%s-%d", r.SessionID, r.Hand),
	}
	for i, p := range players {
		h.Seats[i] = p.Seat + 1
		h.StartingStacks[i] = p.StartingStack
		h.FinishingStacks[i] = p.EndingStack
		h.Winnings[i] = p.Won
		h.Players[i] = p.Name
	}
	if i, ok := index[r.SmallSeat]; ok {
		h.BlindsOrStraddles[i] = r.SmallBlind
	}
	if i, ok := index[r.BigSeat]; ok {
		h.BlindsOrStraddles[i] = r.BigBlind
	}

	for i, p := range players {
		cards := "????"
		if len(p.Hole) == 2 {
			cards = p.Hole[0] + p.Hole[1]
		}
		h.Actions = append(h.Actions, fmt.Sprintf("d dh p%d %s", i+1, cards))
	}
	dealt := 0
	for _, street := range r.Streets {
		if len(street.Board) > dealt {
			h.Actions = append(h.Actions, "d db "+strings.Join(street.Board[dealt:], ""))
			dealt = len(street.Board)
		}
		for _, a := range street.Actions {
			if formatted, ok := FormatAction(index[a.Seat], a.Action, a.BetTo); ok {
				h.Actions = append(h.Actions, formatted)
			}
		}
	}
	if len(r.Board) > dealt {
		h.Actions = append(h.Actions, "d db "+strings.Join(r.Board[dealt:], ""))
	}
	for _, s := range r.Showdown {
		if i, ok := index[s.Seat]; ok && len(s.Hole) == 2 {
			h.Actions = append(h.Actions, fmt.Sprintf("p%d sm %s%s", i+1, s.Hole[0], s.Hole[1]))
		}
	}

	if !r.StartedAt.IsZero() {
		ts := r.StartedAt.UTC()
		h.Time = ts.Format("15:04:05")
		h.TimeZone = "UTC"
		h.Day, h.Month, h.Year = ts.Day(), int(ts.Month()), ts.Year()
	}
	return h
}

func phhOrder(r HandRecord) []PlayerRecord {
	start := 0
	for i, p := range r.Players {
		if p.Seat > r.Dealer {
			start = i
			break
		}
	}
	out := make([]PlayerRecord, 0, len(r.Players))
	out = append(out, r.Players[start:]...)
	return append(out, r.Players[:start]...)
}

// FormatAction converts an action name to PHH. It returns false for blind
// posts, which PHH carries in blinds_or_straddles.
func FormatAction(index int, action string, betTo int) (string, bool) {
	player := fmt.Sprintf("p%d", index+1)
	switch action {
	case "fold":
		return player + " f", true
	case "check", "call":
		return player + " cc", true
	case "raise", "allin", "bet":
		if betTo <= 0 {
			return "", false
		}
		return fmt.Sprintf("%s cbr %d", player, betTo), true
	case ActionSmallBlind, ActionBigBlind:
		return "", false
	default:
		return fmt.Sprintf("# %s %s %d", player, action, betTo), true
	}
}

// EncodePHH writes one hand as PHH TOML.
func EncodePHH(w io.Writer, h *PHH) error {
	if h == nil {
		return fmt.Errorf("phh: hand is nil")
	}
	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(h)
}

// EncodeHands writes hands as a PHHS file: one numbered section per hand.
func EncodeHands(w io.Writer, records []HandRecord) error {
	for i, r := range records {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "[%d]\n", i+1); err != nil {
			return err
		}
		if err := EncodePHH(w, ToPHH(r)); err != nil {
			return fmt.Errorf("hand %d: %w", r.Hand, err)
		}
	}
	return nil
}
