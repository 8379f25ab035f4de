package poker

import "fmt"

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// String returns the display glyph for a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Code returns the wire letter for a suit (S, H, D, C)
func (s Suit) Code() string {
	switch s {
	case Spades:
		return "S"
	case Hearts:
		return "H"
	case Diamonds:
		return "D"
	case Clubs:
		return "C"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank. Aces are high (14) but play low in the
// five-high straight.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the single-character token for a rank
func (r Rank) String() string {
	switch r {
	case Ten:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		if r >= Two && r <= Nine {
			return string(rune('0' + int(r)))
		}
		return "?"
	}
}

// Name returns the spelled-out rank name used in hand descriptions
func (r Rank) Name() string {
	switch r {
	case Two:
		return "Two"
	case Three:
		return "Three"
	case Four:
		return "Four"
	case Five:
		return "Five"
	case Six:
		return "Six"
	case Seven:
		return "Seven"
	case Eight:
		return "Eight"
	case Nine:
		return "Nine"
	case Ten:
		return "Ten"
	case Jack:
		return "Jack"
	case Queen:
		return "Queen"
	case King:
		return "King"
	case Ace:
		return "Ace"
	default:
		return "?"
	}
}

// Plural returns the plural rank name ("Sixes", "Aces")
func (r Rank) Plural() string {
	if r == Six {
		return "Sixes"
	}
	return r.Name() + "s"
}

// Card represents a playing card. The zero value is not a valid card;
// parsing an unrecognized code yields it, and its rank counts as 0.
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the display form of a card (e.g., "A♠")
func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// Code returns the two-character wire form, suit letter first (e.g., "SA")
func (c Card) Code() string {
	if !c.Valid() {
		return "??"
	}
	return c.Suit.Code() + c.Rank.String()
}

// Valid reports whether the card holds a real suit and rank
func (c Card) Valid() bool {
	return c.Suit >= Spades && c.Suit <= Clubs && c.Rank >= Two && c.Rank <= Ace
}

// Value returns the numeric rank used for comparisons; invalid cards are 0
func (c Card) Value() int {
	if !c.Valid() {
		return 0
	}
	return int(c.Rank)
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.Rank == Ace
}

// ParseCard parses a two-character suit-first code such as "SA" (ace of
// spades) or "C2" (two of clubs). The error carries the offending code.
func ParseCard(code string) (Card, error) {
	c := CardFromCode(code)
	if !c.Valid() {
		return Card{}, fmt.Errorf("invalid card code %q", code)
	}
	return c, nil
}

// MustParseCard is ParseCard for literals in tests and tables; it panics
// on malformed input.
func MustParseCard(code string) Card {
	c, err := ParseCard(code)
	if err != nil {
		panic(err)
	}
	return c
}

// CardFromCode is the total form of ParseCard: unrecognized input yields
// the zero (invalid) card instead of an error.
func CardFromCode(code string) Card {
	if len(code) != 2 {
		return Card{}
	}

	var suit Suit
	switch code[0] {
	case 'S', 's':
		suit = Spades
	case 'H', 'h':
		suit = Hearts
	case 'D', 'd':
		suit = Diamonds
	case 'C', 'c':
		suit = Clubs
	default:
		return Card{}
	}

	var rank Rank
	switch code[1] {
	case '2', '3', '4', '5', '6', '7', '8', '9':
		rank = Rank(code[1] - '0')
	case 'T', 't':
		rank = Ten
	case 'J', 'j':
		rank = Jack
	case 'Q', 'q':
		rank = Queen
	case 'K', 'k':
		rank = King
	case 'A', 'a':
		rank = Ace
	default:
		return Card{}
	}

	return Card{Suit: suit, Rank: rank}
}

// MustParseCards parses a card list and panics on error (for tests)
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards %q: %v", s, err))
	}
	return cards
}

// ParseCards parses a list of card codes. Codes may be separated by
// spaces or commas ("SA SK" or "SA,SK").
func ParseCards(s string) ([]Card, error) {
	var cards []Card
	start := -1
	for i := 0; i <= len(s); i++ {
		if i < len(s) && s[i] != ' ' && s[i] != ',' && s[i] != '\t' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			card, err := ParseCard(s[start:i])
			if err != nil {
				return nil, err
			}
			cards = append(cards, card)
			start = -1
		}
	}
	return cards, nil
}
