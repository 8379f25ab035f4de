package equity

import "fmt"

// CompletionPolicy controls how hands are completed and compared per
// trial. The zero value is BestOfSeven.
type CompletionPolicy uint8

const (
	// BestOfSeven completes the community to a 5-card board shared by
	// every player and picks each player's best 5-of-7 hand, compared by
	// the full ranked key.
	BestOfSeven CompletionPolicy = iota

	// FirstFive reproduces the historical behavior: each player's hand is
	// their own cards plus the community, truncated to the first five or
	// completed privately from the shuffled deck, and hands compare by
	// coarse category value only. Kept for consumers that depend on the
	// old numbers.
	FirstFive
)

// String returns the flag spelling of the policy
func (p CompletionPolicy) String() string {
	switch p {
	case FirstFive:
		return "first-five"
	default:
		return "best-of-seven"
	}
}

// ParseCompletionPolicy parses a flag or config spelling
func ParseCompletionPolicy(s string) (CompletionPolicy, error) {
	switch s {
	case "best-of-seven", "":
		return BestOfSeven, nil
	case "first-five":
		return FirstFive, nil
	default:
		return BestOfSeven, fmt.Errorf("unknown completion policy %q", s)
	}
}

// TiePolicy controls how a tie at the top is scored. The zero value is
// TieLoss, the historical behavior.
type TiePolicy uint8

const (
	// TieLoss scores a top tie as a loss for the hero.
	TieLoss TiePolicy = iota

	// TieSplit scores a top tie as half a win.
	TieSplit

	// TieWin scores a top tie as a full win.
	TieWin
)

// String returns the flag spelling of the policy
func (p TiePolicy) String() string {
	switch p {
	case TieSplit:
		return "split"
	case TieWin:
		return "win"
	default:
		return "loss"
	}
}

// ParseTiePolicy parses a flag or config spelling
func ParseTiePolicy(s string) (TiePolicy, error) {
	switch s {
	case "loss", "":
		return TieLoss, nil
	case "split":
		return TieSplit, nil
	case "win":
		return TieWin, nil
	default:
		return TieLoss, fmt.Errorf("unknown tie policy %q", s)
	}
}
