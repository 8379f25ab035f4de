// Package equity estimates win probability for a hold'em hand by Monte
// Carlo simulation: repeated uniformly shuffled deals of the remaining
// deck against random opponent holdings, tallied with the hand
// classifier.
package equity

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/crsthn-slv/poker-game-sub001/poker"
)

// DefaultIterations is the trial count used when a request does not set
// one.
const DefaultIterations = 2000

// parallelThreshold is the iteration count below which a pool is not
// worth the fan-out overhead.
const parallelThreshold = 500

// Request describes one equity estimate
type Request struct {
	Hole       []poker.Card
	Community  []poker.Card
	Opponents  int
	Iterations int
}

// Config configures an Estimator
type Config struct {
	Completion CompletionPolicy
	Tie        TiePolicy
	Pool       *Pool       // optional; nil estimates sequentially
	Logger     *log.Logger // optional
}

// Estimator runs Monte Carlo equity estimates. It is constructed once by
// the composition root and shared; concurrent Estimate calls are
// independent of each other.
type Estimator struct {
	completion CompletionPolicy
	tie        TiePolicy
	pool       *Pool
	logger     *log.Logger
}

// New creates an Estimator
func New(cfg Config) *Estimator {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Estimator{
		completion: cfg.Completion,
		tie:        cfg.Tie,
		pool:       cfg.Pool,
		logger:     logger.WithPrefix("equity"),
	}
}

// Completion returns the estimator's completion policy
func (e *Estimator) Completion() CompletionPolicy {
	return e.completion
}

// TiePolicy returns the estimator's tie policy
func (e *Estimator) TiePolicy() TiePolicy {
	return e.tie
}

// Estimate runs the Monte Carlo batch for a request, drawing all
// randomness from the supplied source. Degenerate requests (hole count
// other than 2, more than 5 community cards, fewer than 1 opponent,
// invalid cards, or more players than the deck can seat) return a zero
// result without running any trials. Once a batch starts it always runs
// to completion; callers that stop waiting abandon the result, not the
// computation.
func (e *Estimator) Estimate(req Request, rng *rand.Rand) Result {
	res := Result{Tie: e.tie}

	if len(req.Hole) != 2 || len(req.Community) > 5 || req.Opponents < 1 {
		return res
	}
	for _, c := range req.Hole {
		if !c.Valid() {
			return res
		}
	}
	for _, c := range req.Community {
		if !c.Valid() {
			return res
		}
	}

	iterations := req.Iterations
	if iterations <= 0 {
		iterations = DefaultIterations
	}

	used := make([]poker.Card, 0, len(req.Hole)+len(req.Community))
	used = append(used, req.Hole...)
	used = append(used, req.Community...)
	available := poker.Remaining(used)
	if e.cardsNeeded(req) > len(available) {
		return res
	}

	start := time.Now()
	if e.pool != nil && iterations >= parallelThreshold {
		res.Wins, res.Ties = e.pool.Run(iterations, rng, func(n int, wrng *rand.Rand) (uint32, uint32) {
			return e.simulate(req, append([]poker.Card(nil), available...), n, wrng)
		})
	} else {
		res.Wins, res.Ties = e.simulate(req, available, iterations, rng)
	}
	res.Trials = uint32(iterations)

	e.logger.Debug("estimate complete",
		"hole", poker.HoleKey(req.Hole),
		"community", len(req.Community),
		"opponents", req.Opponents,
		"trials", iterations,
		"percent", res.Percent(),
		"elapsed", time.Since(start))

	return res
}

// cardsNeeded returns the deck cards one trial consumes beyond the fixed
// hole and community cards
func (e *Estimator) cardsNeeded(req Request) int {
	if e.completion == FirstFive {
		fill := 5 - 2 - len(req.Community)
		if fill < 0 {
			fill = 0
		}
		return fill + req.Opponents*(2+fill)
	}
	return (5 - len(req.Community)) + 2*req.Opponents
}

// simulate runs iterations trials over a private copy of the available
// cards, which it shuffles in place.
func (e *Estimator) simulate(req Request, available []poker.Card, iterations int, rng *rand.Rand) (wins, ties uint32) {
	if e.completion == FirstFive {
		return simulateFirstFive(req, available, iterations, rng)
	}
	return simulateBestOfSeven(req, available, iterations, rng)
}

// simulateBestOfSeven deals a shared board out to five cards, gives each
// opponent two fresh hole cards, and compares best-of-seven ranked keys.
func simulateBestOfSeven(req Request, available []poker.Card, iterations int, rng *rand.Rand) (wins, ties uint32) {
	board := make([]poker.Card, 0, 5)
	hand := make([]poker.Card, 0, 7)

	for i := 0; i < iterations; i++ {
		poker.Shuffle(available, rng)
		cursor := 0

		board = append(board[:0], req.Community...)
		for len(board) < 5 {
			board = append(board, available[cursor])
			cursor++
		}

		hand = append(hand[:0], req.Hole...)
		hand = append(hand, board...)
		heroVal := poker.EvaluateBest(hand)

		win, tied := true, false
		for o := 0; o < req.Opponents; o++ {
			hand = append(hand[:0], available[cursor], available[cursor+1])
			cursor += 2
			hand = append(hand, board...)

			cmp := heroVal.Compare(poker.EvaluateBest(hand))
			if cmp < 0 {
				win = false
				break
			}
			if cmp == 0 {
				tied = true
			}
		}

		if win {
			if tied {
				ties++
			} else {
				wins++
			}
		}
	}

	return wins, ties
}

// simulateFirstFive reproduces the historical trial: every player's hand
// is their own cards plus the community, truncated to the first five or
// completed privately from the front of the shuffled deck, and hands
// compare by coarse category only.
func simulateFirstFive(req Request, available []poker.Card, iterations int, rng *rand.Rand) (wins, ties uint32) {
	hand := make([]poker.Card, 0, 8)

	for i := 0; i < iterations; i++ {
		poker.Shuffle(available, rng)
		cursor := 0

		hand = append(hand[:0], req.Hole...)
		hand = append(hand, req.Community...)
		for len(hand) < 5 {
			hand = append(hand, available[cursor])
			cursor++
		}
		heroCat := poker.EvaluateFive(hand).Category

		win, tied := true, false
		for o := 0; o < req.Opponents; o++ {
			hand = append(hand[:0], available[cursor], available[cursor+1])
			cursor += 2
			hand = append(hand, req.Community...)
			for len(hand) < 5 {
				hand = append(hand, available[cursor])
				cursor++
			}

			oppCat := poker.EvaluateFive(hand).Category
			if oppCat > heroCat {
				win = false
				break
			}
			if oppCat == heroCat {
				tied = true
			}
		}

		if win {
			if tied {
				ties++
			} else {
				wins++
			}
		}
	}

	return wins, ties
}
