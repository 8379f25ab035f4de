package poker

import "fmt"

// HandCategory represents the rank of a poker hand, from weakest to
// strongest. Categories compare by this numeric value alone; kicker-level
// ordering lives in HandValue.
type HandCategory uint8

const (
	Invalid HandCategory = iota
	HighCard
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns the display name of the hand category
func (h HandCategory) String() string {
	switch h {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Invalid"
	}
}

// Classification is the public result of classifying a hand: the coarse
// category plus a human-readable description.
type Classification struct {
	Category    HandCategory `json:"category"`
	Description string       `json:"description"`
}

// String returns the description
func (c Classification) String() string {
	return c.Description
}

// invalidClassification is the sentinel for malformed input; the
// classifier never returns an error.
var invalidClassification = Classification{Category: Invalid, Description: "Invalid hand"}

// Classify classifies a 5-card hand. Inputs shorter than 5 cards, or
// containing invalid cards among the first five, classify as Invalid.
// Longer inputs evaluate the first five cards only; use EvaluateBest for
// best-of-seven selection. The input is never mutated and any ordering of
// the same five cards classifies identically.
func Classify(cards []Card) Classification {
	if len(cards) < 5 {
		return invalidClassification
	}

	v := EvaluateFive(cards)
	if v.Category == Invalid {
		return invalidClassification
	}

	return Classification{Category: v.Category, Description: describe(v)}
}

// ClassifyHole classifies a 2-card starting hand: a pocket pair or a high
// card holding noted as suited or offsuit. Fewer than 2 cards, or invalid
// cards, classify as Invalid. Duplicate card values are not rejected;
// equal ranks count as a pair.
func ClassifyHole(cards []Card) Classification {
	if len(cards) < 2 {
		return invalidClassification
	}

	a, b := cards[0], cards[1]
	if !a.Valid() || !b.Valid() {
		return invalidClassification
	}

	if a.Rank == b.Rank {
		return Classification{
			Category:    Pair,
			Description: fmt.Sprintf("Pair of %s", a.Rank.Plural()),
		}
	}

	high, low := a.Rank, b.Rank
	if low > high {
		high, low = low, high
	}
	suitedness := "offsuit"
	if a.Suit == b.Suit {
		suitedness = "suited"
	}

	return Classification{
		Category:    HighCard,
		Description: fmt.Sprintf("%s %s %s", high.Name(), low.Name(), suitedness),
	}
}

// describe renders the human-readable description for an evaluated hand
func describe(v HandValue) string {
	switch v.Category {
	case RoyalFlush:
		return "Royal Flush"
	case StraightFlush:
		return fmt.Sprintf("Straight Flush, %s high", v.Tiebreak[0].Name())
	case FourOfAKind:
		return fmt.Sprintf("Four of a Kind, %s", v.Tiebreak[0].Plural())
	case FullHouse:
		return fmt.Sprintf("Full House, %s over %s", v.Tiebreak[0].Plural(), v.Tiebreak[3].Plural())
	case Flush:
		return fmt.Sprintf("Flush, %s high", v.Tiebreak[0].Name())
	case Straight:
		return fmt.Sprintf("Straight, %s high", v.Tiebreak[0].Name())
	case ThreeOfAKind:
		return fmt.Sprintf("Three of a Kind, %s", v.Tiebreak[0].Plural())
	case TwoPair:
		return fmt.Sprintf("Two Pair, %s and %s", v.Tiebreak[0].Plural(), v.Tiebreak[2].Plural())
	case Pair:
		return fmt.Sprintf("Pair of %s", v.Tiebreak[0].Plural())
	case HighCard:
		return fmt.Sprintf("%s high", v.Tiebreak[0].Name())
	default:
		return "Invalid hand"
	}
}
