package game

import (
	"fmt"
	"slices"

	"github.com/lox/pokertrainer/poker"
)

// Contribution is one player's investment in the hand at settlement.
type Contribution struct {
	Seat     int
	Invested int
	Folded   bool
}

// Pot represents a pot (main or side)
type Pot struct {
	Amount   int
	Eligible []int // Seats eligible for this pot, in contribution order
}

// PotResult is a distributed pot.
type PotResult struct {
	Amount   int
	Winners  []int
	Eligible []int
}

// CalculatePots splits the chips invested this hand into a main pot and side
// pots. Tier thresholds are the distinct investments of non-folded players;
// each tier collects what every player, folded or not, put in between the
// previous threshold and its own, and is contested by the non-folded players
// who reached it. Folded chips above the highest threshold go to the last
// tier, so the pots always sum to the total invested.
func CalculatePots(contributions []Contribution) ([]Pot, error) {
	total := 0
	var thresholds []int
	for _, c := range contributions {
		if c.Invested < 0 {
			return nil, &InvariantError{Check: "pots", Detail: fmt.Sprintf("seat %d invested %d", c.Seat, c.Invested), Err: ErrNegativeBalance}
		}
		total += c.Invested
		if !c.Folded && c.Invested > 0 {
			thresholds = append(thresholds, c.Invested)
		}
	}
	if len(thresholds) == 0 {
		if total == 0 {
			return nil, nil
		}
		return nil, ErrNoContenders
	}
	slices.Sort(thresholds)
	thresholds = slices.Compact(thresholds)

	var pots []Pot
	if len(thresholds) == 1 {
		// everyone still in invested the same amount
		pots = []Pot{{Amount: total, Eligible: eligibleAt(contributions, thresholds[0])}}
	} else {
		pots = tieredPots(contributions, thresholds)
	}

	sum := 0
	for _, p := range pots {
		sum += p.Amount
	}
	if sum != total {
		return nil, &InvariantError{
			Check:  "pots",
			Detail: fmt.Sprintf("tiers sum to %d, invested %d", sum, total),
			Err:    ErrChipConservation,
		}
	}
	return pots, nil
}

func tieredPots(contributions []Contribution, thresholds []int) []Pot {
	pots := make([]Pot, 0, len(thresholds))
	prev, collected, total := 0, 0, 0
	for _, c := range contributions {
		total += c.Invested
	}
	for _, th := range thresholds {
		amount := 0
		for _, c := range contributions {
			amount += min(max(c.Invested-prev, 0), th-prev)
		}
		pots = append(pots, Pot{Amount: amount, Eligible: eligibleAt(contributions, th)})
		collected += amount
		prev = th
	}
	// folded investment above the top threshold
	pots[len(pots)-1].Amount += total - collected
	return pots
}

func eligibleAt(contributions []Contribution, threshold int) []int {
	var seats []int
	for _, c := range contributions {
		if !c.Folded && c.Invested >= threshold {
			seats = append(seats, c.Seat)
		}
	}
	return seats
}

// DistributePots awards each pot to its eligible seats holding the best
// (lowest) rank. Eligible seats without a rank cannot win. Split pots are
// divided evenly and odd chips go one at a time to the winners in the order
// they appear in order, which should run clockwise from the seat left of the
// button. Payouts are keyed by seat.
func DistributePots(pots []Pot, ranks map[int]poker.HandRank, order []int) ([]PotResult, map[int]int, error) {
	position := make(map[int]int, len(order))
	for i, seat := range order {
		position[seat] = i
	}

	results := make([]PotResult, 0, len(pots))
	payouts := make(map[int]int)
	for i, pot := range pots {
		var winners []int
		if len(pot.Eligible) == 1 {
			winners = []int{pot.Eligible[0]}
		} else {
			best := poker.WorstRank
			for _, seat := range pot.Eligible {
				rank, ok := ranks[seat]
				switch {
				case !ok:
					continue
				case rank < best:
					best = rank
					winners = append(winners[:0], seat)
				case rank == best:
					winners = append(winners, seat)
				}
			}
		}
		if len(winners) == 0 {
			if pot.Amount == 0 {
				continue
			}
			return nil, nil, fmt.Errorf("pot %d of %d chips: %w", i, pot.Amount, ErrNoContenders)
		}

		slices.SortStableFunc(winners, func(a, b int) int {
			return orderOf(position, a) - orderOf(position, b)
		})
		share, odd := pot.Amount/len(winners), pot.Amount%len(winners)
		for j, seat := range winners {
			payouts[seat] += share
			if j < odd {
				payouts[seat]++
			}
		}
		results = append(results, PotResult{
			Amount:   pot.Amount,
			Winners:  winners,
			Eligible: slices.Clone(pot.Eligible),
		})
	}
	return results, payouts, nil
}

// orderOf places seats missing from the order after every listed seat.
func orderOf(position map[int]int, seat int) int {
	if p, ok := position[seat]; ok {
		return p
	}
	return len(position) + seat
}
