package evaluator

import (
	"fmt"

	ph "github.com/paulhankin/poker"

	"github.com/lox/pokertrainer/poker"
)

// Contender is a player still holding cards at showdown.
type Contender struct {
	Seat int
	Hole poker.Hand
}

// Ranked is a contender's exact showdown rank.
type Ranked struct {
	Seat int
	Rank poker.HandRank
}

// RankContenders scores every contender's best hand on a complete board.
func RankContenders(contenders []Contender, board poker.Hand) ([]Ranked, error) {
	if board.CountCards() != 5 {
		return nil, fmt.Errorf("%w: showdown needs 5 board cards, got %d", ErrInvalidCards, board.CountCards())
	}
	out := make([]Ranked, 0, len(contenders))
	for _, c := range contenders {
		if err := validate(c.Hole, board); err != nil {
			return nil, fmt.Errorf("seat %d: %w", c.Seat, err)
		}
		out = append(out, Ranked{Seat: c.Seat, Rank: poker.Evaluate7Cards(c.Hole | board)})
	}
	return out, nil
}

// DetermineWinners returns the seats holding the minimum rank. Several seats
// are returned on a tie, in contender order.
func DetermineWinners(contenders []Contender, board poker.Hand) ([]int, error) {
	ranked, err := RankContenders(contenders, board)
	if err != nil {
		return nil, err
	}
	best := poker.WorstRank
	var winners []int
	for _, r := range ranked {
		switch {
		case r.Rank < best:
			best = r.Rank
			winners = append(winners[:0], r.Seat)
		case r.Rank == best:
			winners = append(winners, r.Seat)
		}
	}
	return winners, nil
}

// Describe names the best hand in cards, e.g. "full house, kings full of
// twos". It understands 5 and 7 card hands and falls back to the category
// name for anything else.
func Describe(cards poker.Hand) string {
	if n := cards.CountCards(); n != 5 && n != 7 {
		return categoryName(cards)
	}

	converted := make([]ph.Card, 0, 7)
	for _, c := range cards.Cards() {
		pc, err := toPH(c)
		if err != nil {
			return categoryName(cards)
		}
		converted = append(converted, pc)
	}
	desc, err := ph.Describe(converted)
	if err != nil {
		return categoryName(cards)
	}
	return desc
}

func categoryName(cards poker.Hand) string {
	rank, err := poker.Evaluate(cards)
	if err != nil {
		return ""
	}
	return rank.String()
}

var phSuits = [4]ph.Suit{
	poker.Clubs:    ph.Club,
	poker.Diamonds: ph.Diamond,
	poker.Hearts:   ph.Heart,
	poker.Spades:   ph.Spade,
}

// toPH converts to the describer's card, whose ranks run 1..13 with ace low.
func toPH(c poker.Card) (ph.Card, error) {
	r := ph.Rank(c.Rank() + 2)
	if c.Rank() == poker.Ace {
		r = 1
	}
	return ph.MakeCard(phSuits[c.Suit()], r)
}
