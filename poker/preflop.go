package poker

import "sort"

// holeStrengths maps each of the 169 canonical starting hands to its
// percentile strength (1.0 = best, 0.0 = worst)
// Data source: http://iholdemindicator.com/rank.html
var holeStrengths = map[string]float64{
	"AA": 1.000, "KK": 0.994, "QQ": 0.988, "AKs": 0.982, "JJ": 0.976,
	"AQs": 0.970, "KQs": 0.964, "AJs": 0.958, "KJs": 0.952, "TT": 0.946,
	"AKo": 0.940, "ATs": 0.934, "QJs": 0.928, "KTs": 0.922, "QTs": 0.916,
	"JTs": 0.910, "99": 0.904, "AQo": 0.898, "A9s": 0.892, "KQo": 0.886,
	"88": 0.880, "K9s": 0.874, "T9s": 0.868, "A8s": 0.862, "Q9s": 0.856,
	"J9s": 0.850, "AJo": 0.844, "A5s": 0.838, "77": 0.832, "A7s": 0.826,
	"KJo": 0.820, "A4s": 0.814, "A3s": 0.808, "A6s": 0.802, "QJo": 0.796,
	"66": 0.790, "K8s": 0.784, "T8s": 0.778, "A2s": 0.772, "98s": 0.766,
	"J8s": 0.760, "ATo": 0.754, "Q8s": 0.748, "K7s": 0.742, "KTo": 0.736,
	"55": 0.730, "JTo": 0.724, "87s": 0.718, "QTo": 0.712, "44": 0.706,
	"22": 0.700, "33": 0.694, "K6s": 0.688, "97s": 0.682, "K5s": 0.676,
	"76s": 0.670, "T7s": 0.664, "K4s": 0.658, "K2s": 0.652, "K3s": 0.646,
	"Q7s": 0.640, "86s": 0.634, "65s": 0.628, "J7s": 0.622, "54s": 0.616,
	"Q6s": 0.610, "75s": 0.604, "96s": 0.598, "Q5s": 0.592, "64s": 0.586,
	"Q4s": 0.580, "Q3s": 0.574, "T9o": 0.568, "T6s": 0.562, "Q2s": 0.556,
	"A9o": 0.550, "53s": 0.544, "85s": 0.538, "J6s": 0.532, "J9o": 0.526,
	"K9o": 0.520, "J5s": 0.514, "Q9o": 0.508, "43s": 0.502, "74s": 0.496,
	"J4s": 0.490, "J3s": 0.484, "95s": 0.478, "J2s": 0.472, "63s": 0.466,
	"A8o": 0.460, "52s": 0.454, "T5s": 0.448, "84s": 0.442, "T4s": 0.436,
	"T3s": 0.430, "42s": 0.424, "T2s": 0.418, "98o": 0.412, "T8o": 0.406,
	"A5o": 0.400, "A7o": 0.394, "73s": 0.388, "A4o": 0.382, "32s": 0.376,
	"94s": 0.370, "93s": 0.364, "J8o": 0.358, "A3o": 0.352, "62s": 0.346,
	"92s": 0.340, "K8o": 0.334, "A6o": 0.328, "87o": 0.322, "Q8o": 0.316,
	"83s": 0.310, "A2o": 0.304, "82s": 0.298, "97o": 0.292, "72s": 0.286,
	"76o": 0.280, "K7o": 0.274, "65o": 0.268, "T7o": 0.262, "K6o": 0.256,
	"86o": 0.250, "54o": 0.244, "K5o": 0.238, "J7o": 0.232, "75o": 0.226,
	"Q7o": 0.220, "K4o": 0.214, "K3o": 0.208, "96o": 0.202, "K2o": 0.196,
	"64o": 0.190, "Q6o": 0.184, "53o": 0.178, "85o": 0.172, "T6o": 0.166,
	"Q5o": 0.160, "43o": 0.154, "Q4o": 0.148, "Q3o": 0.142, "74o": 0.136,
	"Q2o": 0.130, "J6o": 0.124, "63o": 0.118, "J5o": 0.112, "95o": 0.106,
	"52o": 0.100, "J4o": 0.094, "J3o": 0.088, "42o": 0.082, "J2o": 0.076,
	"84o": 0.070, "T5o": 0.064, "T4o": 0.058, "32o": 0.052, "T3o": 0.046,
	"73o": 0.040, "T2o": 0.034, "62o": 0.028, "94o": 0.022, "93o": 0.016,
	"92o": 0.010, "83o": 0.006, "82o": 0.003, "72o": 0.000,
}

// HoleStrength returns the percentile strength (0.0-1.0) for a 2-card
// starting hand. Invalid or short input returns 0.
func HoleStrength(cards []Card) float64 {
	key := HoleKey(cards)
	if key == "" {
		return 0
	}
	return holeStrengths[key]
}

// HoleKey converts hole cards to the canonical lookup key ("AKs", "72o",
// "TT"). Invalid input yields the empty string.
func HoleKey(cards []Card) string {
	if len(cards) < 2 || !cards[0].Valid() || !cards[1].Valid() {
		return ""
	}

	high, low := cards[0].Rank, cards[1].Rank
	if low > high {
		high, low = low, high
	}

	if high == low {
		return high.String() + low.String()
	}

	suited := "o"
	if cards[0].Suit == cards[1].Suit {
		suited = "s"
	}
	return high.String() + low.String() + suited
}

// HoleKeys returns all 169 canonical starting hand keys, strongest first
func HoleKeys() []string {
	keys := make([]string, 0, len(holeStrengths))
	for k := range holeStrengths {
		keys = append(keys, k)
	}
	sortKeysByStrength(keys)
	return keys
}

func sortKeysByStrength(keys []string) {
	sort.Slice(keys, func(i, j int) bool {
		si, sj := holeStrengths[keys[i]], holeStrengths[keys[j]]
		if si != sj {
			return si > sj
		}
		return keys[i] < keys[j]
	})
}

// HoleCards returns one representative pair of cards for a canonical key,
// spades-first for deterministic chart generation. Unknown keys return
// false.
func HoleCards(key string) ([]Card, bool) {
	if _, ok := holeStrengths[key]; !ok {
		return nil, false
	}

	r1 := rankFromToken(key[0])
	r2 := rankFromToken(key[1])
	if r1 == 0 || r2 == 0 {
		return nil, false
	}

	if len(key) == 2 {
		return []Card{{Suit: Spades, Rank: r1}, {Suit: Hearts, Rank: r2}}, true
	}
	if key[2] == 's' {
		return []Card{{Suit: Spades, Rank: r1}, {Suit: Spades, Rank: r2}}, true
	}
	return []Card{{Suit: Spades, Rank: r1}, {Suit: Hearts, Rank: r2}}, true
}

func rankFromToken(t byte) Rank {
	switch t {
	case '2', '3', '4', '5', '6', '7', '8', '9':
		return Rank(t - '0')
	case 'T':
		return Ten
	case 'J':
		return Jack
	case 'Q':
		return Queen
	case 'K':
		return King
	case 'A':
		return Ace
	}
	return 0
}
