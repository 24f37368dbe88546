// Package ai decides actions for computer-controlled seats. Each personality
// is a small strategy over three numbers: hand strength, stack-to-pot ratio
// and pot odds.
package ai

import (
	"fmt"
	"math"
	rand "math/rand/v2"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/lox/pokertrainer/internal/evaluator"
	"github.com/lox/pokertrainer/poker"
)

// Action is the kind of decision an AI makes.
type Action uint8

const (
	Fold Action = iota
	Call
	Raise
)

func (a Action) String() string {
	switch a {
	case Fold:
		return "fold"
	case Call:
		return "call"
	case Raise:
		return "raise"
	default:
		return "unknown"
	}
}

// Situation is everything a decision may look at. Amounts are in chips.
type Situation struct {
	Hole       poker.Hand
	Board      poker.Hand
	CurrentBet int // table bet to match this round
	Pot        int
	Stack      int // chips behind
	PlayerBet  int // already committed this round
	BigBlind   int
	MinRaise   int // minimum raise increment; BigBlind when zero
}

// ToCall is the chips needed to match the current bet, capped at the stack.
func (s Situation) ToCall() int {
	return max(0, min(s.CurrentBet-s.PlayerBet, s.Stack))
}

// MinRaiseTo is the smallest legal raise target.
func (s Situation) MinRaiseTo() int {
	inc := s.MinRaise
	if inc <= 0 {
		inc = s.BigBlind
	}
	return s.CurrentBet + max(inc, 1)
}

// MaxRaiseTo is the all-in target.
func (s Situation) MaxRaiseTo() int {
	return s.PlayerBet + s.Stack
}

// Metrics are the diagnostics behind a decision.
type Metrics struct {
	SPR          float64 // +Inf when the pot is empty
	PotOdds      float64
	HandStrength float64
	Confidence   float64
	Category     string
	Estimated    bool
}

// Decision is an immutable AI choice. For Call the amount is the chips put
// in; for Raise it is the total bet for the round after raising.
type Decision struct {
	Action    Action
	Amount    int
	Metrics   Metrics
	Reasoning string
}

// Engine produces decisions. It is not safe for concurrent use: the random
// source is shared by every decision so a seeded session replays exactly.
type Engine struct {
	eval   *evaluator.Evaluator
	rng    *rand.Rand
	logger zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithSamples sets the Monte Carlo sample count for incomplete boards.
func WithSamples(n int) Option {
	return func(e *Engine) { e.eval = evaluator.New(n) }
}

// WithLogger attaches a logger; decisions are logged at debug level.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) { e.logger = logger.With().Str("component", "ai").Logger() }
}

// NewEngine creates an engine drawing bluffs and board samples from rng.
func NewEngine(rng *rand.Rand, opts ...Option) *Engine {
	e := &Engine{
		eval:   evaluator.New(evaluator.DefaultSamples),
		rng:    rng,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Decide picks an action for the personality in the given situation.
func (e *Engine) Decide(p Personality, s Situation) Decision {
	m := e.metrics(s)

	strat := strategies[Disciplined]
	if p.Valid() {
		strat = strategies[p]
	}
	d := strat.decide(s, m, e.rng)
	d = normalize(s, d)
	d.Metrics.Confidence = clamp01(d.Metrics.Confidence)
	d.Reasoning = fmt.Sprintf("%s: %s (strength %.2f %s, spr %s, pot odds %.2f)",
		p, d.Reasoning, m.HandStrength, m.Category, formatSPR(m.SPR), m.PotOdds)

	e.logger.Debug().
		Str("personality", p.String()).
		Str("action", d.Action.String()).
		Int("amount", d.Amount).
		Float64("strength", m.HandStrength).
		Float64("pot_odds", m.PotOdds).
		Msg("AI decision")
	return d
}

func (e *Engine) metrics(s Situation) Metrics {
	m := Metrics{SPR: math.Inf(1)}
	if s.Pot > 0 {
		m.SPR = float64(s.Stack) / float64(s.Pot)
	}
	if call := s.ToCall(); call > 0 {
		m.PotOdds = float64(call) / float64(s.Pot+call)
	}

	ev, err := e.eval.Evaluate(s.Hole, s.Board, e.rng)
	if err != nil {
		e.logger.Warn().Err(err).Str("hole", s.Hole.String()).Msg("Cannot evaluate hand, assuming weakest")
		m.HandStrength = evaluator.ScoreToStrength(math.Inf(1))
		m.Category = poker.HighCard.String()
		return m
	}
	m.HandStrength = ev.Strength()
	m.Category = ev.Category
	m.Estimated = ev.Estimated
	return m
}

// normalize keeps amounts within what the seat can legally put in. A raise the
// seat cannot afford becomes a call; the state machine still re-validates.
func normalize(s Situation, d Decision) Decision {
	switch d.Action {
	case Raise:
		hi := s.MaxRaiseTo()
		if hi <= s.CurrentBet {
			d.Action, d.Amount = Call, s.ToCall()
			return d
		}
		d.Amount = min(max(d.Amount, s.MinRaiseTo()), hi)
	case Call:
		d.Amount = s.ToCall()
	default:
		d.Action, d.Amount = Fold, 0
		if s.ToCall() == 0 {
			// never fold when checking is free
			d.Action = Call
		}
	}
	return d
}

func formatSPR(spr float64) string {
	if math.IsInf(spr, 1) {
		return "inf"
	}
	return strconv.FormatFloat(spr, 'f', 2, 64)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
