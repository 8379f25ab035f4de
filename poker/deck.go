package poker

import "math/rand"

// DeckSize is the number of distinct cards
const DeckSize = 52

// CardSet represents a set of cards using a bitset for fast operations.
// Each card maps to a bit: index = (rank-2)*4 + suit.
type CardSet uint64

// cardIndex converts a card to its bit index (0-51)
func cardIndex(c Card) int {
	return int(c.Rank-Two)*4 + int(c.Suit)
}

// Add adds a card to the set
func (cs *CardSet) Add(c Card) {
	*cs |= 1 << cardIndex(c)
}

// Contains checks if a card is in the set
func (cs CardSet) Contains(c Card) bool {
	return cs&(1<<cardIndex(c)) != 0
}

// NewCardSet creates a CardSet from a slice of cards. Invalid cards are
// skipped rather than mapped to a bogus bit.
func NewCardSet(cards []Card) CardSet {
	var cs CardSet
	for _, c := range cards {
		if c.Valid() {
			cs.Add(c)
		}
	}
	return cs
}

// FindDuplicate returns the first card that appears twice in the slice.
// Invalid cards are ignored; callers reject those separately.
func FindDuplicate(cards []Card) (Card, bool) {
	var seen CardSet
	for _, c := range cards {
		if !c.Valid() {
			continue
		}
		if seen.Contains(c) {
			return c, true
		}
		seen.Add(c)
	}
	return Card{}, false
}

// NewDeck returns all 52 cards in suit-then-rank order
func NewDeck() []Card {
	cards := make([]Card, 0, DeckSize)
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, Card{Suit: suit, Rank: rank})
		}
	}
	return cards
}

// Remaining returns the deck minus the used cards. The result backs one
// simulated trial, so no card appears twice in it.
func Remaining(used []Card) []Card {
	set := NewCardSet(used)
	cards := make([]Card, 0, DeckSize-len(used))
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			c := Card{Suit: suit, Rank: rank}
			if !set.Contains(c) {
				cards = append(cards, c)
			}
		}
	}
	return cards
}

// Shuffle permutes cards in place with Fisher-Yates, drawing a uniformly
// random permutation from the supplied source.
func Shuffle(cards []Card, rng *rand.Rand) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}
