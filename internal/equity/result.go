package equity

import "math"

// Result represents the outcome of a Monte Carlo equity estimate. Wins
// counts trials where the hero strictly beat every opponent; Ties counts
// trials where the hero tied the best opponent without losing. The tie
// policy the estimator ran with is recorded so that Equity and Percent
// resolve ties the same way the batch did.
type Result struct {
	Wins   uint32
	Ties   uint32
	Trials uint32
	Tie    TiePolicy
}

// WinRate returns the strict win rate (0.0 to 1.0)
func (r Result) WinRate() float64 {
	if r.Trials == 0 {
		return 0.0
	}
	return float64(r.Wins) / float64(r.Trials)
}

// TieRate returns the top-tie rate (0.0 to 1.0)
func (r Result) TieRate() float64 {
	if r.Trials == 0 {
		return 0.0
	}
	return float64(r.Ties) / float64(r.Trials)
}

// LossRate returns the loss rate (0.0 to 1.0)
func (r Result) LossRate() float64 {
	if r.Trials == 0 {
		return 0.0
	}
	losses := r.Trials - r.Wins - r.Ties
	return float64(losses) / float64(r.Trials)
}

// Equity returns the tie-policy-adjusted equity (0.0 to 1.0): ties count
// as losses, half wins, or wins depending on the policy.
func (r Result) Equity() float64 {
	if r.Trials == 0 {
		return 0.0
	}
	wins := float64(r.Wins)
	switch r.Tie {
	case TieSplit:
		wins += float64(r.Ties) * 0.5
	case TieWin:
		wins += float64(r.Ties)
	}
	return wins / float64(r.Trials)
}

// Percent returns the equity as a percentage in [0,100], rounded to one
// decimal place.
func (r Result) Percent() float64 {
	return math.Round(r.Equity()*1000) / 10
}

// ConfidenceInterval returns the 95% confidence interval for the equity
func (r Result) ConfidenceInterval() (lower, upper float64) {
	equity := r.Equity()
	n := float64(r.Trials)

	if n == 0 {
		return 0.0, 0.0
	}

	// Standard error for a binomial proportion, ±1.96 SE.
	se := math.Sqrt((equity * (1.0 - equity)) / n)
	margin := 1.96 * se

	lower = math.Max(0.0, equity-margin)
	upper = math.Min(1.0, equity+margin)

	return lower, upper
}
