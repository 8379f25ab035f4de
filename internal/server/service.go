package server

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/crsthn-slv/poker-game-sub001/internal/equity"
	"github.com/crsthn-slv/poker-game-sub001/internal/randutil"
	"github.com/crsthn-slv/poker-game-sub001/poker"
)

// ErrDuplicateCard reports a card appearing twice across the hole and
// community cards of an estimate request.
var ErrDuplicateCard = errors.New("duplicate card")

// equityEstimator runs a Monte Carlo batch. Satisfied by
// *equity.Estimator; tests substitute blocking or canned implementations.
type equityEstimator interface {
	Estimate(req equity.Request, rng *rand.Rand) equity.Result
}

// Service validates wire payloads and runs classifications and equity
// estimates on behalf of connections.
type Service struct {
	estimator  equityEstimator
	completion equity.CompletionPolicy
	tie        equity.TiePolicy

	defaultIterations int
	maxIterations     int

	logger *log.Logger

	// seeder hands each estimate request an independent derived rng
	mu     sync.Mutex
	seeder *rand.Rand
}

// NewService builds a Service from validated configuration
func NewService(cfg *Config, logger *log.Logger) (*Service, error) {
	completion, err := equity.ParseCompletionPolicy(cfg.Equity.HandPolicy)
	if err != nil {
		return nil, fmt.Errorf("hand_policy: %w", err)
	}
	tie, err := equity.ParseTiePolicy(cfg.Equity.TiePolicy)
	if err != nil {
		return nil, fmt.Errorf("tie_policy: %w", err)
	}

	seed := cfg.Equity.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	pool := equity.NewPool(cfg.Equity.Workers, logger)
	estimator := equity.New(equity.Config{
		Completion: completion,
		Tie:        tie,
		Pool:       pool,
		Logger:     logger,
	})

	return &Service{
		estimator:         estimator,
		completion:        completion,
		tie:               tie,
		defaultIterations: cfg.Equity.Iterations,
		maxIterations:     cfg.Equity.MaxIterations,
		logger:            logger.WithPrefix("service"),
		seeder:            randutil.New(seed),
	}, nil
}

// ClassifyHand parses the card codes and classifies the five-card hand.
// Parse failures return an error carrying the offending code; short input
// classifies as invalid rather than erroring.
func (s *Service) ClassifyHand(data ClassifyHandData) (poker.Classification, error) {
	cards, err := parseCardCodes(data.Cards)
	if err != nil {
		return poker.Classification{}, err
	}
	return poker.Classify(cards), nil
}

// ClassifyHole parses the card codes and classifies the two-card holding
func (s *Service) ClassifyHole(data ClassifyHoleData) (poker.Classification, error) {
	cards, err := parseCardCodes(data.Cards)
	if err != nil {
		return poker.Classification{}, err
	}
	return poker.ClassifyHole(cards), nil
}

// EstimateEquity validates the request and runs a Monte Carlo batch.
// Degenerate requests (too few opponents, oversized board, not enough
// cards left to deal) produce a zero-trial result, matching the
// estimator's own contract.
func (s *Service) EstimateEquity(data EstimateEquityData) (equity.Result, time.Duration, error) {
	hole, err := parseCardCodes(data.HoleCards)
	if err != nil {
		return equity.Result{}, 0, err
	}
	community, err := parseCardCodes(data.CommunityCards)
	if err != nil {
		return equity.Result{}, 0, err
	}

	if card, dup := poker.FindDuplicate(append(append([]poker.Card(nil), hole...), community...)); dup {
		return equity.Result{}, 0, fmt.Errorf("%w %s in request", ErrDuplicateCard, card.Code())
	}

	iterations := data.Iterations
	if iterations > s.maxIterations {
		s.logger.Warn("Clamping iteration count", "requested", iterations, "max", s.maxIterations)
		iterations = s.maxIterations
	}
	if iterations <= 0 {
		iterations = s.defaultIterations
	}

	start := time.Now()
	result := s.estimator.Estimate(equity.Request{
		Hole:       hole,
		Community:  community,
		Opponents:  data.Opponents,
		Iterations: iterations,
	}, s.nextRNG())

	return result, time.Since(start), nil
}

// CompletionPolicy returns the configured hand completion policy
func (s *Service) CompletionPolicy() equity.CompletionPolicy {
	return s.completion
}

// TiePolicy returns the configured tie handling policy
func (s *Service) TiePolicy() equity.TiePolicy {
	return s.tie
}

// nextRNG derives an independent rng for one estimate request
func (s *Service) nextRNG() *rand.Rand {
	s.mu.Lock()
	seed := s.seeder.Int63()
	s.mu.Unlock()
	return randutil.New(seed)
}

func parseCardCodes(codes []string) ([]poker.Card, error) {
	cards := make([]poker.Card, 0, len(codes))
	for _, code := range codes {
		card, err := poker.ParseCard(code)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}
