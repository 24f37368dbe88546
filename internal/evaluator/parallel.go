package evaluator

import (
	"context"
	rand "math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/lox/pokertrainer/internal/randutil"
	"github.com/lox/pokertrainer/poker"
)

// EstimateParallel runs the same Monte Carlo estimate as Evaluate, spreading
// the samples over worker goroutines with seeds drawn from rng. Complete
// hands are scored exactly without spawning workers.
//
// Sessions never call this; it exists for the CLI where a single evaluation
// may use a large sample count.
func (e *Evaluator) EstimateParallel(ctx context.Context, hole, board poker.Hand, rng *rand.Rand) (Evaluation, error) {
	if err := validate(hole, board); err != nil {
		return Evaluation{}, err
	}
	known := hole | board
	if known.CountCards() >= 5 {
		return e.Evaluate(hole, board, rng)
	}

	workers := min(runtime.NumCPU(), 8, e.samples)
	perWorker := e.samples / workers
	remainder := e.samples % workers
	need := 5 - board.CountCards()

	g, ctx := errgroup.WithContext(ctx)
	sums := make([]float64, workers)
	for w := range workers {
		n := perWorker
		if w < remainder {
			n++
		}
		// seeds are drawn before any goroutine starts so results depend only on rng
		workerRng := randutil.Derive(rng)

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sums[w] = sampleRanks(known, remainingCards(known), need, n, workerRng)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Evaluation{}, err
	}

	var total float64
	for _, s := range sums {
		total += s
	}
	return estimate(total, e.samples), nil
}
