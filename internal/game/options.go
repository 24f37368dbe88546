package game

import (
	rand "math/rand/v2"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"

	"github.com/lox/pokertrainer/internal/history"
	"github.com/lox/pokertrainer/poker"
)

// Recorder receives every completed hand.
type Recorder interface {
	Record(history.HandRecord)
}

// Option configures a Session during creation.
type Option func(*sessionConfig)

type sessionConfig struct {
	id           string
	rng          *rand.Rand
	seed         int64
	seeded       bool
	logger       zerolog.Logger
	clock        quartz.Clock
	recorder     Recorder
	blinds       BlindSchedule
	tableMinimum int
	deck         *poker.Deck
	button       int
	aiSamples    int
}

// WithSeed makes every shuffle and AI decision reproducible.
func WithSeed(seed int64) Option {
	return func(c *sessionConfig) {
		c.seed = seed
		c.seeded = true
	}
}

// WithRand supplies the random source directly. It takes precedence over
// WithSeed.
func WithRand(rng *rand.Rand) Option {
	return func(c *sessionConfig) {
		c.rng = rng
	}
}

// WithLogger sets the logger. Sessions log nothing by default.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *sessionConfig) {
		c.logger = logger
	}
}

// WithClock sets the clock used for hand timestamps.
func WithClock(clock quartz.Clock) Option {
	return func(c *sessionConfig) {
		c.clock = clock
	}
}

// WithRecorder receives completed hands, typically a *history.Buffer.
func WithRecorder(r Recorder) Option {
	return func(c *sessionConfig) {
		c.recorder = r
	}
}

// WithBlinds sets the blind schedule. Default is DefaultBlinds.
func WithBlinds(b BlindSchedule) Option {
	return func(c *sessionConfig) {
		c.blinds = b
	}
}

// WithTableMinimum sets the stack a player needs to be dealt in. Default 1.
func WithTableMinimum(chips int) Option {
	return func(c *sessionConfig) {
		c.tableMinimum = chips
	}
}

// WithDeck uses a specific deck, normally a stacked one for tests. The deck
// is reset at the start of every hand.
func WithDeck(deck *poker.Deck) Option {
	return func(c *sessionConfig) {
		c.deck = deck
	}
}

// WithButton sets the seat holding the dealer button on the first hand.
func WithButton(seat int) Option {
	return func(c *sessionConfig) {
		c.button = seat
	}
}

// WithID overrides the generated session identifier.
func WithID(id string) Option {
	return func(c *sessionConfig) {
		c.id = id
	}
}

// WithAISamples sets the Monte Carlo sample count for AI hand strength.
func WithAISamples(n int) Option {
	return func(c *sessionConfig) {
		c.aiSamples = n
	}
}
