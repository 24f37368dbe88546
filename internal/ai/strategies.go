package ai

import (
	"fmt"
	"math"
	rand "math/rand/v2"

	"github.com/lox/pokertrainer/poker"
)

type strategy interface {
	decide(s Situation, m Metrics, rng *rand.Rand) Decision
}

var strategies = [...]strategy{
	Disciplined:    disciplined{},
	Aggressive:     aggressive{},
	Calculating:    calculating{},
	CallingStation: callingStation{},
}

// Thresholds are on the ScoreToStrength scale: 0.25 pair, 0.40 two pair,
// 0.55 trips, 0.65 straight, 0.75 flush, 0.85 full house.
const (
	disciplinedBase    = 0.15
	disciplinedPerSPR  = 0.03
	disciplinedMaxFold = 0.38
	disciplinedValue   = 0.55

	aggressiveShoveSPR = 3.0
	aggressiveShoveMin = 0.25
	aggressiveValue    = 0.55
	aggressiveBluff    = 0.30
	aggressiveLooseOdd = 0.25

	calculatingMargin = 0.05
	calculatingValue  = 0.65
	calculatingBet    = 0.55

	stationRaise = 0.85
)

// disciplined folds below a threshold that rises with SPR: deep stacks need
// a better hand to continue.
type disciplined struct{}

func (disciplined) decide(s Situation, m Metrics, _ *rand.Rand) Decision {
	spr := m.SPR
	if math.IsInf(spr, 1) {
		spr = 10
	}
	threshold := math.Min(disciplinedBase+disciplinedPerSPR*math.Min(spr, 10), disciplinedMaxFold)
	d := Decision{Metrics: m}
	d.Metrics.Confidence = 0.5 + math.Abs(m.HandStrength-threshold)

	switch {
	case m.HandStrength < threshold && s.ToCall() > 0:
		d.Action = Fold
		d.Reasoning = fmt.Sprintf("below fold threshold %.2f", threshold)
	case m.HandStrength >= disciplinedValue:
		d.Action, d.Amount = Raise, s.CurrentBet+potFraction(s, 2, 3)
		d.Reasoning = "value raise with a strong made hand"
	case s.ToCall() == 0:
		d.Action = Call
		d.Reasoning = "checks a marginal hand"
	default:
		d.Action = Call
		d.Reasoning = fmt.Sprintf("continues above threshold %.2f", threshold)
	}
	return withHoleNote(s, d)
}

// aggressive shoves short stacks and mixes in bluffs when deep.
type aggressive struct{}

func (aggressive) decide(s Situation, m Metrics, rng *rand.Rand) Decision {
	d := Decision{Metrics: m, Action: Call}

	if m.SPR < aggressiveShoveSPR {
		if m.HandStrength >= aggressiveShoveMin {
			d.Action, d.Amount = Raise, s.MaxRaiseTo()
			d.Metrics.Confidence = 0.5 + m.HandStrength/2
			d.Reasoning = "shoves with a low stack-to-pot ratio"
			return d
		}
		if s.ToCall() > 0 && m.PotOdds > aggressiveLooseOdd {
			d.Action = Fold
			d.Metrics.Confidence = 0.6
			d.Reasoning = "gives up a weak hand when short"
			return d
		}
		d.Metrics.Confidence = 0.4
		d.Reasoning = "stays in cheaply when short"
		return d
	}

	if m.HandStrength >= aggressiveValue {
		d.Action, d.Amount = Raise, s.CurrentBet+max(s.Pot, 1)
		d.Metrics.Confidence = 0.5 + m.HandStrength/2
		d.Reasoning = "pot-sized raise for value"
		return d
	}
	if rng.Float64() < aggressiveBluff {
		d.Action, d.Amount = Raise, s.CurrentBet+potFraction(s, 3, 4)
		d.Metrics.Confidence = 0.3
		d.Reasoning = "bluffs with a deep stack"
		return d
	}
	if s.ToCall() > 0 && m.PotOdds > aggressiveLooseOdd {
		d.Action = Fold
		d.Metrics.Confidence = 0.5
		d.Reasoning = "price too high without a bluff"
		return d
	}
	d.Metrics.Confidence = 0.4
	d.Reasoning = "keeps the pot going"
	return d
}

// calculating compares hand strength against pot odds.
type calculating struct{}

func (calculating) decide(s Situation, m Metrics, _ *rand.Rand) Decision {
	d := Decision{Metrics: m}
	edge := m.HandStrength - m.PotOdds
	d.Metrics.Confidence = 0.5 + math.Abs(edge)/2

	if s.ToCall() == 0 {
		if m.HandStrength >= calculatingBet {
			d.Action, d.Amount = Raise, s.CurrentBet+potFraction(s, 1, 2)
			d.Reasoning = "bets for value with no price to pay"
			return d
		}
		d.Action = Call
		d.Reasoning = "checks when free"
		return d
	}

	switch {
	case edge <= calculatingMargin:
		d.Action = Fold
		d.Reasoning = fmt.Sprintf("negative expectation, edge %.2f", edge)
	case m.HandStrength >= calculatingValue:
		d.Action, d.Amount = Raise, s.CurrentBet+potFraction(s, 2, 3)
		d.Reasoning = fmt.Sprintf("raises with edge %.2f", edge)
	default:
		d.Action = Call
		d.Reasoning = fmt.Sprintf("calls with edge %.2f", edge)
	}
	return d
}

// callingStation calls whatever it can and only raises the nuts.
type callingStation struct{}

func (callingStation) decide(s Situation, m Metrics, _ *rand.Rand) Decision {
	d := Decision{Metrics: m, Action: Call}
	if m.HandStrength >= stationRaise {
		d.Action, d.Amount = Raise, s.MinRaiseTo()
		d.Metrics.Confidence = 0.9
		d.Reasoning = "min-raises a monster"
		return d
	}
	d.Metrics.Confidence = 0.3
	d.Reasoning = "calls along"
	return d
}

// potFraction returns num/den of the pot, at least one big blind.
func potFraction(s Situation, num, den int) int {
	return max(s.Pot*num/den, s.BigBlind, 1)
}

// withHoleNote appends the starting-hand class before the flop.
func withHoleNote(s Situation, d Decision) Decision {
	if s.Board.CountCards() == 0 && s.Hole.CountCards() == 2 {
		d.Reasoning = fmt.Sprintf("%s, %s hole cards", d.Reasoning, poker.CategorizeHoleCards(s.Hole))
	}
	return d
}
