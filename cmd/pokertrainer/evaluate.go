package main

import (
	"fmt"
	"time"

	"github.com/lox/pokertrainer/cmd/pokertrainer/shared"
	"github.com/lox/pokertrainer/internal/evaluator"
	"github.com/lox/pokertrainer/internal/randutil"
	"github.com/lox/pokertrainer/poker"
)

type EvaluateCmd struct {
	Hole    string `arg:"" help:"Hole cards, e.g. AsKs"`
	Board   string `short:"b" help:"Board cards, zero to five"`
	Samples int    `short:"n" default:"5000" help:"Monte Carlo samples when the board is incomplete"`
	Seed    *int64 `help:"Seed for the sampler (defaults to the clock)"`
}

func (c *EvaluateCmd) Run(cli *CLI) error {
	console := shared.NewConsole(cli.LogLevel)
	ctx, cancel := shared.SignalContext(console)
	defer cancel()

	hole, err := poker.ParseHand(c.Hole)
	if err != nil {
		return fmt.Errorf("hole cards: %w", err)
	}
	var board poker.Hand
	if c.Board != "" {
		if board, err = poker.ParseHand(c.Board); err != nil {
			return fmt.Errorf("board: %w", err)
		}
	}

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}
	rng := randutil.New(seed)

	start := time.Now()
	eval, err := evaluator.New(c.Samples).EstimateParallel(ctx, hole, board, rng)
	if err != nil {
		return err
	}
	console.Debug("Evaluation finished", "seed", seed, "elapsed", time.Since(start), "samples", eval.Samples)

	fmt.Printf("%s %s", headerStyle.Render("Hole:"), handStyle.Render(hole.String()))
	if board != 0 {
		fmt.Printf("  %s %s", headerStyle.Render("Board:"), handStyle.Render(board.String()))
	}
	fmt.Println()

	if eval.Estimated {
		fmt.Printf("Estimated over %d samples\n", eval.Samples)
	}
	fmt.Printf("Score:    %.1f\n", eval.Score)
	fmt.Printf("Category: %s\n", categoryStyle.Render(eval.Category))
	fmt.Printf("Strength: %.3f\n", eval.Strength())
	if !eval.Estimated {
		fmt.Printf("Best:     %s\n", evaluator.Describe(hole|board))
	}
	return nil
}
