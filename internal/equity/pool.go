package equity

import (
	"io"
	"math/rand"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/crsthn-slv/poker-game-sub001/internal/randutil"
)

// Pool is the execution context for parallel estimates. The composition
// root constructs one and hands it to each Estimator; there is no global
// shared pool.
type Pool struct {
	workers int
	logger  *log.Logger
}

// NewPool creates a pool with the given worker count. A count of 0 or
// less sizes the pool from the CPU count, capped at 8 where fan-out
// returns diminish.
func NewPool(workers int, logger *log.Logger) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
		if workers > 8 {
			workers = 8
		}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Pool{
		workers: workers,
		logger:  logger.WithPrefix("pool"),
	}
}

// Workers returns the pool's worker count
func (p *Pool) Workers() int {
	return p.workers
}

// Run splits an iteration budget across the pool's workers and sums
// their tallies. Each worker draws a seed from the caller's rng before
// launch, so results are reproducible for a given seed regardless of
// scheduling. Run blocks until every worker finishes; the batch is never
// cancelled mid-flight.
func (p *Pool) Run(iterations int, rng *rand.Rand, task func(iterations int, rng *rand.Rand) (wins, ties uint32)) (wins, ties uint32) {
	workers := p.workers
	if workers > iterations {
		workers = iterations
	}
	if workers <= 1 {
		return task(iterations, rng)
	}

	per := iterations / workers
	remainder := iterations % workers

	p.logger.Debug("running parallel batch", "workers", workers, "iterations", iterations)

	type tally struct {
		wins uint32
		ties uint32
	}
	results := make([]tally, workers)

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		n := per
		if w < remainder {
			n++
		}
		seed := rng.Int63()

		g.Go(func() error {
			ww, tt := task(n, randutil.New(seed))
			results[w] = tally{wins: ww, ties: tt}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		p.logger.Error("worker failed", "error", err)
	}

	for _, r := range results {
		wins += r.wins
		ties += r.ties
	}
	return wins, ties
}
