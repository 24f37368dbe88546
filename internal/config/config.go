// Package config loads training session defaults from HCL.
//
//	session {
//	  starting_stack = 1000
//	  small_blind    = 5
//	  big_blind      = 10
//	  double_every   = 10
//	}
//
//	history {
//	  capacity = 100
//	  export   = "hands.phhs"
//	}
//
//	seat "alice" {
//	  personality = "aggressive"
//	}
//
//	seat "you" {
//	  human = true
//	  stack = 2000
//	}
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/pokertrainer/internal/ai"
	"github.com/lox/pokertrainer/internal/evaluator"
	"github.com/lox/pokertrainer/internal/game"
	"github.com/lox/pokertrainer/internal/history"
)

// MaxSeats is the largest table a session may be configured with.
const MaxSeats = 10

// Config represents the complete configuration file
type Config struct {
	Session *SessionSettings `hcl:"session,block"`
	History *HistorySettings `hcl:"history,block"`
	Seats   []SeatSettings   `hcl:"seat,block"`
}

// SessionSettings holds table-wide settings.
type SessionSettings struct {
	StartingStack int    `hcl:"starting_stack,optional"`
	SmallBlind    int    `hcl:"small_blind,optional"`
	BigBlind      int    `hcl:"big_blind,optional"`
	DoubleEvery   *int   `hcl:"double_every,optional"` // 0 keeps the blinds fixed
	TableMinimum  int    `hcl:"table_minimum,optional"`
	AISamples     int    `hcl:"ai_samples,optional"`
	Seed          *int64 `hcl:"seed,optional"`
}

// HistorySettings controls the hand history buffer.
type HistorySettings struct {
	Capacity int    `hcl:"capacity,optional"`
	Export   string `hcl:"export,optional"`
}

// SeatSettings describes one seat. Seats are AI-controlled unless human is
// set.
type SeatSettings struct {
	Name        string `hcl:"name,label"`
	Human       bool   `hcl:"human,optional"`
	Personality string `hcl:"personality,optional"`
	Stack       int    `hcl:"stack,optional"`
}

// Default returns a four-bot table with one seat per personality.
func Default() *Config {
	c := &Config{Seats: defaultSeats()}
	c.applyDefaults()
	return c
}

func defaultSeats() []SeatSettings {
	var seats []SeatSettings
	for _, p := range ai.Personalities() {
		seats = append(seats, SeatSettings{Name: p.String(), Personality: p.String()})
	}
	return seats
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source and fills in defaults for missing values. A file
// without seat blocks gets the default seats.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	if len(config.Seats) == 0 {
		config.Seats = defaultSeats()
	}
	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Session == nil {
		c.Session = &SessionSettings{}
	}
	s := c.Session
	if s.StartingStack == 0 {
		s.StartingStack = 1000
	}
	if s.SmallBlind == 0 {
		s.SmallBlind = game.DefaultBlinds.Small
	}
	if s.BigBlind == 0 {
		s.BigBlind = max(game.DefaultBlinds.Big, s.SmallBlind*2)
	}
	if s.DoubleEvery == nil {
		every := game.DefaultBlinds.DoubleEvery
		s.DoubleEvery = &every
	}
	if s.TableMinimum == 0 {
		s.TableMinimum = 1
	}
	if s.AISamples == 0 {
		s.AISamples = evaluator.DefaultSamples
	}

	if c.History == nil {
		c.History = &HistorySettings{}
	}
	if c.History.Capacity == 0 {
		c.History.Capacity = history.DefaultCapacity
	}

	for i := range c.Seats {
		seat := &c.Seats[i]
		if seat.Stack == 0 {
			seat.Stack = s.StartingStack
		}
		if !seat.Human && seat.Personality == "" {
			seat.Personality = ai.Calculating.String()
		}
	}
}

// Validate checks the configuration is playable.
func (c *Config) Validate() error {
	if c.Session == nil || c.History == nil {
		return fmt.Errorf("configuration has no defaults applied")
	}
	if err := c.Blinds().Validate(); err != nil {
		return err
	}
	if c.Session.StartingStack <= 0 {
		return fmt.Errorf("starting stack must be positive, got %d", c.Session.StartingStack)
	}
	if c.Session.TableMinimum < 1 {
		return fmt.Errorf("table minimum must be at least 1, got %d", c.Session.TableMinimum)
	}
	if c.Session.AISamples < 1 {
		return fmt.Errorf("ai samples must be positive, got %d", c.Session.AISamples)
	}
	if c.History.Capacity < 1 {
		return fmt.Errorf("history capacity must be positive, got %d", c.History.Capacity)
	}

	if len(c.Seats) < 2 || len(c.Seats) > MaxSeats {
		return fmt.Errorf("between 2 and %d seats required, got %d", MaxSeats, len(c.Seats))
	}
	names := make(map[string]bool, len(c.Seats))
	for _, seat := range c.Seats {
		if names[seat.Name] {
			return fmt.Errorf("duplicate seat %q", seat.Name)
		}
		names[seat.Name] = true
		if seat.Stack <= 0 {
			return fmt.Errorf("seat %s: stack must be positive", seat.Name)
		}
		if seat.Human {
			if seat.Personality != "" {
				return fmt.Errorf("seat %s: human seats take no personality", seat.Name)
			}
			continue
		}
		if _, err := ai.ParsePersonality(seat.Personality); err != nil {
			return fmt.Errorf("seat %s: %w", seat.Name, err)
		}
	}
	return nil
}

// Blinds returns the configured blind schedule.
func (c *Config) Blinds() game.BlindSchedule {
	return game.BlindSchedule{
		Small:       c.Session.SmallBlind,
		Big:         c.Session.BigBlind,
		DoubleEvery: *c.Session.DoubleEvery,
	}
}

// SeatConfigs converts the seats for game.NewSession.
func (c *Config) SeatConfigs() ([]game.SeatConfig, error) {
	seats := make([]game.SeatConfig, 0, len(c.Seats))
	for _, s := range c.Seats {
		sc := game.SeatConfig{Name: s.Name, Stack: s.Stack, AI: !s.Human}
		if sc.AI {
			p, err := ai.ParsePersonality(s.Personality)
			if err != nil {
				return nil, fmt.Errorf("seat %s: %w", s.Name, err)
			}
			sc.Personality = p
		}
		seats = append(seats, sc)
	}
	return seats, nil
}

// HasHumans reports whether any seat needs a person at the keyboard.
func (c *Config) HasHumans() bool {
	for _, s := range c.Seats {
		if s.Human {
			return true
		}
	}
	return false
}

// SessionOptions returns the options matching the session settings. Callers
// append their own logger, recorder or seed.
func (c *Config) SessionOptions() []game.Option {
	opts := []game.Option{
		game.WithBlinds(c.Blinds()),
		game.WithTableMinimum(c.Session.TableMinimum),
		game.WithAISamples(c.Session.AISamples),
	}
	if c.Session.Seed != nil {
		opts = append(opts, game.WithSeed(*c.Session.Seed))
	}
	return opts
}
