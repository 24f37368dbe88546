// Package evaluator scores hole cards against a board. Complete hands are
// ranked exactly by the poker package; incomplete boards are estimated by
// Monte Carlo completion. ScoreToStrength is the one mapping from scores to
// the [0,1] strength scale shared by the AI engine and reporting.
package evaluator

import (
	"errors"
	"fmt"
	"math"
	rand "math/rand/v2"

	"github.com/lox/pokertrainer/poker"
)

// DefaultSamples is the number of random board completions used when fewer
// than five cards are known.
const DefaultSamples = 200

// ErrInvalidCards reports hole/board combinations that cannot be scored.
var ErrInvalidCards = errors.New("invalid cards")

// Evaluation is the result of scoring hole cards against a board.
type Evaluation struct {
	// Score is the hand rank (lower is stronger). For estimates it is the
	// mean rank over all sampled completions.
	Score     float64
	Rank      poker.HandRank // Score rounded to the nearest rank
	Category  string
	Estimated bool
	Samples   int
}

// Evaluator scores hands with a fixed Monte Carlo sample size.
type Evaluator struct {
	samples int
}

// New creates an evaluator. A non-positive sample count uses DefaultSamples.
func New(samples int) *Evaluator {
	if samples <= 0 {
		samples = DefaultSamples
	}
	return &Evaluator{samples: samples}
}

// Samples returns the Monte Carlo sample size.
func (e *Evaluator) Samples() int {
	return e.samples
}

// Evaluate scores hole against board. With five or more combined cards the
// result is exact; otherwise the board is completed at random from the
// remaining deck and the ranks averaged, drawing only from rng.
func (e *Evaluator) Evaluate(hole, board poker.Hand, rng *rand.Rand) (Evaluation, error) {
	if err := validate(hole, board); err != nil {
		return Evaluation{}, err
	}

	known := hole | board
	if known.CountCards() >= 5 {
		rank, err := poker.Evaluate(known)
		if err != nil {
			return Evaluation{}, err
		}
		return exact(rank), nil
	}

	if rng == nil {
		return Evaluation{}, fmt.Errorf("%w: estimate needs a random source", ErrInvalidCards)
	}
	sum := sampleRanks(known, remainingCards(known), 5-board.CountCards(), e.samples, rng)
	return estimate(sum, e.samples), nil
}

// Evaluate scores with DefaultSamples.
func Evaluate(hole, board poker.Hand, rng *rand.Rand) (Evaluation, error) {
	return New(DefaultSamples).Evaluate(hole, board, rng)
}

func validate(hole, board poker.Hand) error {
	if hole.CountCards() != 2 {
		return fmt.Errorf("%w: need 2 hole cards, got %d", ErrInvalidCards, hole.CountCards())
	}
	if n := board.CountCards(); n > 5 {
		return fmt.Errorf("%w: board has %d cards", ErrInvalidCards, n)
	}
	if hole&board != 0 {
		return fmt.Errorf("%w: hole cards %s overlap board %s", ErrInvalidCards, hole, board)
	}
	return nil
}

func exact(rank poker.HandRank) Evaluation {
	return Evaluation{
		Score:    float64(rank),
		Rank:     rank,
		Category: rank.Type().String(),
	}
}

func estimate(sum float64, samples int) Evaluation {
	mean := sum / float64(samples)
	rank := poker.HandRank(math.Round(mean))
	return Evaluation{
		Score:     mean,
		Rank:      rank,
		Category:  rank.Type().String(),
		Estimated: true,
		Samples:   samples,
	}
}

// remainingCards lists every card not in used.
func remainingCards(used poker.Hand) []poker.Card {
	out := make([]poker.Card, 0, 52-used.CountCards())
	for suit := range uint8(4) {
		for rank := range uint8(13) {
			if c := poker.NewCard(rank, suit); !used.HasCard(c) {
				out = append(out, c)
			}
		}
	}
	return out
}

// sampleRanks completes known with need random cards n times and returns the
// sum of the resulting ranks. available is reordered in place.
func sampleRanks(known poker.Hand, available []poker.Card, need, n int, rng *rand.Rand) float64 {
	var sum float64
	for range n {
		hand := known
		// partial Fisher-Yates: the first need slots become the sample
		for i := 0; i < need; i++ {
			j := i + rng.IntN(len(available)-i)
			available[i], available[j] = available[j], available[i]
			hand.AddCard(available[i])
		}
		sum += float64(poker.Evaluate7Cards(hand))
	}
	return sum
}
