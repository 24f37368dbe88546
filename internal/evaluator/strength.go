package evaluator

import (
	"math"

	"github.com/lox/pokertrainer/poker"
)

// strengthByType maps each hand category to its step on the strength scale.
var strengthByType = [...]float64{
	poker.HighCard:      0.05,
	poker.Pair:          0.25,
	poker.TwoPair:       0.40,
	poker.ThreeOfAKind:  0.55,
	poker.Straight:      0.65,
	poker.Flush:         0.75,
	poker.FullHouse:     0.85,
	poker.FourOfAKind:   0.90,
	poker.StraightFlush: 0.95,
}

// ScoreToStrength maps an evaluation score to [0,1]. The scale is a step
// function with one step per hand category, so it is monotonic: a lower
// (stronger) score never yields a lower strength. Averaged scores are placed
// in the category of their nearest rank.
func ScoreToStrength(score float64) float64 {
	if score < 0 {
		score = 0
	}
	if math.IsNaN(score) || score >= float64(poker.WorstRank) {
		return strengthByType[poker.HighCard]
	}
	rank := poker.HandRank(math.Round(score))
	return strengthByType[rank.Type()]
}

// Strength is ScoreToStrength applied to the evaluation's score.
func (e Evaluation) Strength() float64 {
	return ScoreToStrength(e.Score)
}
