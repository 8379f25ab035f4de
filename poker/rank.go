package poker

import "sort"

// HandValue is the full ranked key of a hand: the category plus the
// grouped ranks ordered by (count descending, rank descending). Straights
// key on the high card only, with the wheel keyed five-high. Two
// HandValues order exactly as the standard 5-card poker comparison.
type HandValue struct {
	Category HandCategory
	Tiebreak [5]Rank
}

// Compare returns -1, 0 or 1 as v sorts below, equal to, or above o
func (v HandValue) Compare(o HandValue) int {
	if v.Category != o.Category {
		if v.Category < o.Category {
			return -1
		}
		return 1
	}
	for i := range v.Tiebreak {
		if v.Tiebreak[i] != o.Tiebreak[i] {
			if v.Tiebreak[i] < o.Tiebreak[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Beats reports whether v strictly outranks o
func (v HandValue) Beats(o HandValue) bool {
	return v.Compare(o) > 0
}

// EvaluateFive evaluates the first five cards of the input. Fewer than 5
// cards, or an invalid card among the first five, yields the zero
// HandValue (category Invalid). The input is not mutated.
func EvaluateFive(cards []Card) HandValue {
	if len(cards) < 5 {
		return HandValue{}
	}
	for _, c := range cards[:5] {
		if !c.Valid() {
			return HandValue{}
		}
	}
	return evaluateFive(cards[:5])
}

// EvaluateBest evaluates the best 5-card hand selectable from 5, 6 or 7
// cards. More than 7 cards evaluate the first seven.
func EvaluateBest(cards []Card) HandValue {
	if len(cards) < 5 {
		return HandValue{}
	}
	if len(cards) > 7 {
		cards = cards[:7]
	}
	for _, c := range cards {
		if !c.Valid() {
			return HandValue{}
		}
	}

	switch len(cards) {
	case 5:
		return evaluateFive(cards)
	case 6:
		var best HandValue
		hand := make([]Card, 0, 5)
		for skip := 0; skip < 6; skip++ {
			hand = hand[:0]
			for i, c := range cards {
				if i != skip {
					hand = append(hand, c)
				}
			}
			if v := evaluateFive(hand); v.Beats(best) {
				best = v
			}
		}
		return best
	default:
		var best HandValue
		hand := make([]Card, 0, 5)
		for skip1 := 0; skip1 < 7; skip1++ {
			for skip2 := skip1 + 1; skip2 < 7; skip2++ {
				hand = hand[:0]
				for i, c := range cards {
					if i != skip1 && i != skip2 {
						hand = append(hand, c)
					}
				}
				if v := evaluateFive(hand); v.Beats(best) {
					best = v
				}
			}
		}
		return best
	}
}

// rankGroup is one distinct rank with its multiplicity
type rankGroup struct {
	rank  Rank
	count int
}

// evaluateFive is the core count-based ladder. It expects exactly 5 valid
// cards and decides the category from rank and suit multiplicities:
// flush when one suit covers all five, straight when the five distinct
// ranks are consecutive or form the wheel (A-5-4-3-2, five high), then
// four of a kind, full house, trips, two pair and pair from the grouped
// counts. {4,1} always outranks {3,2}; neither degrades into the other.
func evaluateFive(cards []Card) HandValue {
	var rankCount [15]int
	var suitCount [4]int
	for _, c := range cards {
		rankCount[c.Rank]++
		suitCount[c.Suit]++
	}

	flush := false
	for _, n := range suitCount {
		if n == 5 {
			flush = true
		}
	}

	// Grouped ranks by (count desc, rank desc). Walking ranks high to low
	// then stable-sorting on count keeps equal counts rank-ordered.
	groups := make([]rankGroup, 0, 5)
	for r := Ace; r >= Two; r-- {
		if rankCount[r] > 0 {
			groups = append(groups, rankGroup{rank: r, count: rankCount[r]})
		}
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].count > groups[j].count
	})

	straightHigh := straightHighCard(groups)

	var v HandValue
	switch {
	case flush && straightHigh == Ace:
		v.Category = RoyalFlush
	case flush && straightHigh != 0:
		v.Category = StraightFlush
	case groups[0].count == 4:
		v.Category = FourOfAKind
	case groups[0].count == 3 && groups[1].count == 2:
		v.Category = FullHouse
	case flush:
		v.Category = Flush
	case straightHigh != 0:
		v.Category = Straight
	case groups[0].count == 3:
		v.Category = ThreeOfAKind
	case groups[0].count == 2 && groups[1].count == 2:
		v.Category = TwoPair
	case groups[0].count == 2:
		v.Category = Pair
	default:
		v.Category = HighCard
	}

	if straightHigh != 0 && (v.Category == Straight || v.Category == StraightFlush || v.Category == RoyalFlush) {
		v.Tiebreak[0] = straightHigh
		return v
	}

	i := 0
	for _, g := range groups {
		for n := 0; n < g.count; n++ {
			v.Tiebreak[i] = g.rank
			i++
		}
	}
	return v
}

// straightHighCard returns the high card of a straight formed by the
// grouped ranks, Five for the wheel, or 0 when there is no straight.
func straightHighCard(groups []rankGroup) Rank {
	if len(groups) != 5 {
		return 0
	}
	// Five distinct ranks, descending.
	if groups[0].rank-groups[4].rank == 4 {
		return groups[0].rank
	}
	if groups[0].rank == Ace && groups[1].rank == Five && groups[4].rank == Two {
		return Five
	}
	return 0
}
