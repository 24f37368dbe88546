package game

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"github.com/lox/pokertrainer/internal/evaluator"
	"github.com/lox/pokertrainer/poker"
)

// ShowdownHand is a contender's final holding.
type ShowdownHand struct {
	Seat        int
	Hole        poker.Hand
	Rank        poker.HandRank
	Description string
}

// ShowdownResult is the outcome of a finished hand. Hands holds every
// contender's final hole cards, ordered best first. An uncontested hand has
// the winner alone, unranked (Rank is poker.WorstRank) and without a
// description.
type ShowdownResult struct {
	Hand        int
	Board       poker.Hand
	Pots        []PotResult
	Hands       []ShowdownHand
	Payouts     map[int]int // chips awarded by seat
	Uncontested bool
}

// Winners returns every seat that won chips, in seat order.
func (r ShowdownResult) Winners() []int {
	return slices.Sorted(maps.Keys(r.Payouts))
}

// ShowdownResult returns the result of the last finished hand.
func (s *Session) ShowdownResult() (ShowdownResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.showdown == nil {
		return ShowdownResult{}, false
	}
	return *s.showdown, true
}

// settle ends the hand: the pot is split into tiers, each tier goes to its
// best eligible hand, and the hand record is published.
func (s *Session) settle() error {
	s.street = Showdown
	s.turn = -1

	var contenders []*Player
	for _, p := range s.players {
		if p.Active {
			contenders = append(contenders, p)
		}
	}
	if len(contenders) == 0 {
		return s.fail("settle", &InvariantError{Check: "settle", Detail: fmt.Sprintf("%d chips with no contender", s.pot), Err: ErrNoContenders})
	}

	result := ShowdownResult{Hand: s.hands, Board: s.boardHand()}
	if len(contenders) == 1 {
		winner := contenders[0].Seat
		result.Uncontested = true
		result.Pots = []PotResult{{Amount: s.pot, Winners: []int{winner}, Eligible: []int{winner}}}
		result.Payouts = map[int]int{winner: s.pot}
		result.Hands = []ShowdownHand{{Seat: winner, Hole: contenders[0].Hole, Rank: poker.WorstRank}}
	} else {
		contributions := make([]Contribution, 0, len(s.players))
		entrants := make([]evaluator.Contender, 0, len(contenders))
		for _, p := range s.players {
			if p.Invested > 0 || p.Active {
				contributions = append(contributions, Contribution{Seat: p.Seat, Invested: p.Invested, Folded: !p.Active})
			}
			if p.Active {
				entrants = append(entrants, evaluator.Contender{Seat: p.Seat, Hole: p.Hole})
			}
		}
		pots, err := CalculatePots(contributions)
		if err != nil {
			return s.fail("settle", err)
		}
		ranked, err := evaluator.RankContenders(entrants, result.Board)
		if err != nil {
			return s.fail("settle", &InvariantError{Check: "showdown", Detail: err.Error(), Err: ErrStateInvariant})
		}
		ranks := make(map[int]poker.HandRank, len(ranked))
		for _, r := range ranked {
			ranks[r.Seat] = r.Rank
			hole := s.players[r.Seat].Hole
			result.Hands = append(result.Hands, ShowdownHand{
				Seat:        r.Seat,
				Hole:        hole,
				Rank:        r.Rank,
				Description: evaluator.Describe(hole | result.Board),
			})
		}
		slices.SortStableFunc(result.Hands, func(a, b ShowdownHand) int {
			return cmp.Compare(a.Rank, b.Rank)
		})

		result.Pots, result.Payouts, err = DistributePots(pots, ranks, s.payoutOrder())
		if err != nil {
			return s.fail("settle", err)
		}
	}

	for _, seat := range s.payoutOrder() {
		amount := result.Payouts[seat]
		if amount == 0 {
			continue
		}
		p := s.players[seat]
		p.Stack += amount
		s.pot -= amount
		s.ledger.Record(Movement{Hand: s.hands, Street: Showdown, Seat: seat, Kind: MoveAward, Amount: amount})
	}
	if s.pot != 0 {
		return s.fail("settle", &InvariantError{
			Check:  "conservation",
			Detail: fmt.Sprintf("%d chips left in the pot after awards", s.pot),
			Err:    ErrChipConservation,
		})
	}
	for _, p := range s.players {
		p.Bet = 0
		if p.Stack > 0 {
			p.AllIn = false
		}
	}

	s.inHand = false
	s.showdown = &result
	if err := s.checkInvariants("settle"); err != nil {
		return err
	}
	s.finishRecord(result)

	s.logger.Info().
		Int("hand", s.hands).
		Ints("winners", result.Winners()).
		Int("pot", sumPots(result.Pots)).
		Bool("uncontested", result.Uncontested).
		Msg("Hand complete")
	return nil
}

func sumPots(pots []PotResult) int {
	total := 0
	for _, p := range pots {
		total += p.Amount
	}
	return total
}
