package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pokertrainer/cmd/pokertrainer/shared"
	"github.com/lox/pokertrainer/internal/config"
	"github.com/lox/pokertrainer/internal/game"
	"github.com/lox/pokertrainer/internal/history"
	"github.com/lox/pokertrainer/internal/statistics"
)

type SimulateCmd struct {
	Config   string `short:"c" default:"pokertrainer.hcl" env:"POKERTRAINER_CONFIG" help:"Table configuration file (defaults apply when missing)"`
	Sessions int    `short:"s" default:"4" help:"Number of independent sessions to run"`
	Hands    int    `short:"n" default:"100" help:"Maximum hands per session"`
	Parallel int    `short:"p" default:"0" help:"Sessions run at once (0 = one per session)"`
	Seed     *int64 `help:"Base seed; session i uses seed+i"`
	Export   string `short:"o" help:"Write every recorded hand to this PHH file"`
}

// sessionResult is what one finished session contributes to the report.
type sessionResult struct {
	id      string
	hands   int
	stacks  []int
	records []history.HandRecord
	elapsed time.Duration
}

func (c *SimulateCmd) Run(cli *CLI) error {
	logger, err := shared.SetupLogger(cli.LogLevel, cli.JSONLogs)
	if err != nil {
		return err
	}
	console := shared.NewConsole(cli.LogLevel)
	ctx, cancel := shared.SignalContext(console)
	defer cancel()

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", c.Config, err)
	}
	if cfg.HasHumans() {
		return fmt.Errorf("simulate runs AI-only tables; %s has human seats", c.Config)
	}
	if c.Sessions < 1 || c.Hands < 1 {
		return fmt.Errorf("sessions and hands must be positive")
	}
	seats, err := cfg.SeatConfigs()
	if err != nil {
		return err
	}

	baseSeed := time.Now().UnixNano()
	switch {
	case c.Seed != nil:
		baseSeed = *c.Seed
	case cfg.Session.Seed != nil:
		baseSeed = *cfg.Session.Seed
	}
	console.Info("Starting simulation", "sessions", c.Sessions, "hands", c.Hands, "seed", baseSeed, "seats", len(seats))

	results := make([]sessionResult, c.Sessions)
	tracker := statistics.NewTracker()
	g, ctx := errgroup.WithContext(ctx)
	if c.Parallel > 0 {
		g.SetLimit(c.Parallel)
	}
	for i := range c.Sessions {
		g.Go(func() error {
			buf := history.NewBuffer(cfg.History.Capacity)
			opts := append(cfg.SessionOptions(),
				game.WithSeed(baseSeed+int64(i)),
				game.WithLogger(logger),
				game.WithRecorder(recorders{buf, tracker}),
			)
			s, err := game.NewSession(seats, opts...)
			if err != nil {
				return err
			}
			res, err := runSession(ctx, s, c.Hands)
			if err != nil {
				return fmt.Errorf("session %s: %w", s.ID(), err)
			}
			res.records = buf.Hands()
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := checkStats(tracker); err != nil {
		return err
	}
	printReport(cfg, results, tracker)

	exportPath := c.Export
	if exportPath == "" {
		exportPath = cfg.History.Export
	}
	if exportPath != "" {
		return exportHands(console, exportPath, results)
	}
	return nil
}

func runSession(ctx context.Context, s *game.Session, hands int) (sessionResult, error) {
	start := time.Now()
	for range hands {
		if err := ctx.Err(); err != nil {
			return sessionResult{}, err
		}
		if _, err := s.StartNewHand(); err != nil {
			if errors.Is(err, game.ErrNotEnoughPlayers) {
				break
			}
			return sessionResult{}, err
		}
		if _, err := s.RunAI(); err != nil {
			return sessionResult{}, err
		}
	}
	return sessionResult{
		id:      s.ID(),
		hands:   s.HandCount(),
		stacks:  s.Stacks(),
		elapsed: time.Since(start),
	}, nil
}

// recorders fans completed hands out to several sinks.
type recorders []game.Recorder

func (r recorders) Record(h history.HandRecord) {
	for _, rec := range r {
		rec.Record(h)
	}
}

// checkStats rejects a report whose per-seat totals do not add up.
func checkStats(tracker *statistics.Tracker) error {
	for _, seat := range tracker.Seats() {
		if err := tracker.Seat(seat).Validate(); err != nil {
			return fmt.Errorf("seat %d statistics: %w", seat, err)
		}
	}
	return nil
}

func printReport(cfg *config.Config, results []sessionResult, tracker *statistics.Tracker) {
	hands := 0
	busted := make([]int, len(cfg.Seats))
	var elapsed time.Duration
	for _, res := range results {
		hands += res.hands
		elapsed += res.elapsed
		for seat, stack := range res.stacks {
			if stack == 0 {
				busted[seat]++
			}
		}
	}

	fmt.Printf("%s %d sessions, %d hands\n\n", headerStyle.Render("Simulation:"), len(results), hands)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		Headers("Seat", "Personality", "Hands", "bb/100", "95% CI", "Showdown wins", "Other wins", "Busted").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	for i, seat := range cfg.Seats {
		st := tracker.Seat(i)
		lo, hi := st.ConfidenceInterval95()
		t.Row(
			seat.Name,
			categoryStyle.Render(seat.Personality),
			fmt.Sprint(st.Hands),
			signedBB(st.BBPer100()),
			dimStyle.Render(fmt.Sprintf("[%.1f, %.1f]", lo*100, hi*100)),
			fmt.Sprint(st.ShowdownWins),
			fmt.Sprint(st.NonShowdownWins),
			fmt.Sprintf("%d/%d", busted[i], len(results)),
		)
	}
	fmt.Println(t)

	if hands > 0 {
		fmt.Println(dimStyle.Render(fmt.Sprintf("%s per hand", (elapsed / time.Duration(hands)).Round(time.Microsecond))))
	}
}

func exportHands(console *log.Logger, path string, results []sessionResult) error {
	var records []history.HandRecord
	ids := make([]string, 0, len(results))
	for _, res := range results {
		records = append(records, res.records...)
		ids = append(ids, res.id)
	}
	if err := history.Export(path, records); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	abs, _ := filepath.Abs(path)
	console.Info("Exported hand history", "path", abs, "hands", len(records), "sessions", strings.Join(ids, ","))
	return nil
}
