package game

import (
	"github.com/lox/pokertrainer/internal/history"
	"github.com/lox/pokertrainer/poker"
)

func (s *Session) beginRecord() {
	r := &history.HandRecord{
		SessionID:  s.id,
		Hand:       s.hands,
		StartedAt:  s.clock.Now(),
		Dealer:     s.dealer,
		SmallSeat:  s.smallBlind,
		BigSeat:    s.bigBlind,
		SmallBlind: s.level.Small,
		BigBlind:   s.level.Big,
		Streets:    []history.StreetLog{{Street: PreFlop.String()}},
	}
	for _, p := range s.players {
		if !p.Active {
			continue
		}
		pr := history.PlayerRecord{
			Seat:          p.Seat,
			Name:          p.Name,
			StartingStack: p.Stack,
			AI:            p.AI,
		}
		if p.AI {
			pr.Personality = p.Personality.String()
		}
		r.Players = append(r.Players, pr)
	}
	s.record = r
}

// logAction appends to the current street's log.
func (s *Session) logAction(p *Player, name string, amount int) {
	if s.record == nil || len(s.record.Streets) == 0 {
		return
	}
	street := &s.record.Streets[len(s.record.Streets)-1]
	street.Actions = append(street.Actions, history.ActionRecord{
		Seat:   p.Seat,
		Action: name,
		Amount: amount,
		BetTo:  p.Bet,
		AllIn:  p.AllIn && amount > 0,
	})
}

// finishRecord completes the hand record and hands it to the recorder.
func (s *Session) finishRecord(result ShowdownResult) {
	r := s.record
	s.record = nil
	if r == nil {
		return
	}

	r.EndedAt = s.clock.Now()
	r.Board = cardStrings(s.board)
	r.Uncontested = result.Uncontested
	for i := range r.Players {
		pr := &r.Players[i]
		p := s.players[pr.Seat]
		pr.EndingStack = p.Stack
		pr.Won = result.Payouts[pr.Seat]
		pr.Hole = p.Hole.Strings()
	}
	for _, h := range result.Hands {
		if result.Uncontested {
			break
		}
		r.Showdown = append(r.Showdown, history.ShowdownEntry{
			Seat:        h.Seat,
			Hole:        h.Hole.Strings(),
			Rank:        uint32(h.Rank),
			Category:    h.Rank.Type().String(),
			Description: h.Description,
			Won:         result.Payouts[h.Seat],
		})
	}
	for _, pot := range result.Pots {
		r.Pots = append(r.Pots, history.PotRecord{
			Amount:   pot.Amount,
			Winners:  pot.Winners,
			Eligible: pot.Eligible,
		})
	}

	if s.recorder != nil {
		s.recorder.Record(*r)
	}
}

func cardStrings(cards []poker.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}
