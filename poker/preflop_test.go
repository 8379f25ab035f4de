package poker

import "testing"

func TestHoleStrengthsTableComplete(t *testing.T) {
	// 13 pairs + 78 suited + 78 offsuit
	if len(holeStrengths) != 169 {
		t.Fatalf("table has %d hands, want 169", len(holeStrengths))
	}
	for key, strength := range holeStrengths {
		if strength < 0 || strength > 1 {
			t.Errorf("%s strength %f out of [0,1]", key, strength)
		}
	}
}

func TestHoleStrength(t *testing.T) {
	tests := []struct {
		cards string
		want  float64
	}{
		{"SA HA", 1.000},
		{"SA SK", 0.982},
		{"SA HK", 0.940},
		{"S7 H2", 0.000},
		{"S7 S2", 0.286},
		{"ST HT", 0.946},
	}

	for _, tt := range tests {
		t.Run(tt.cards, func(t *testing.T) {
			got := HoleStrength(MustParseCards(tt.cards))
			if got != tt.want {
				t.Errorf("HoleStrength(%s) = %f, want %f", tt.cards, got, tt.want)
			}
		})
	}
}

func TestHoleStrengthInvalid(t *testing.T) {
	if got := HoleStrength(nil); got != 0 {
		t.Errorf("nil input strength = %f, want 0", got)
	}
	if got := HoleStrength([]Card{{}, {}}); got != 0 {
		t.Errorf("invalid cards strength = %f, want 0", got)
	}
}

func TestHoleKey(t *testing.T) {
	tests := []struct {
		cards string
		want  string
	}{
		{"SA SK", "AKs"},
		{"SK SA", "AKs"},
		{"SA HK", "AKo"},
		{"H2 ST", "T2o"},
		{"SQ HQ", "QQ"},
		{"D7 D2", "72s"},
	}

	for _, tt := range tests {
		if got := HoleKey(MustParseCards(tt.cards)); got != tt.want {
			t.Errorf("HoleKey(%s) = %s, want %s", tt.cards, got, tt.want)
		}
	}
}

func TestHoleKeysOrdering(t *testing.T) {
	keys := HoleKeys()
	if len(keys) != 169 {
		t.Fatalf("got %d keys, want 169", len(keys))
	}
	if keys[0] != "AA" {
		t.Errorf("strongest hand = %s, want AA", keys[0])
	}
	if keys[len(keys)-1] != "72o" {
		t.Errorf("weakest hand = %s, want 72o", keys[len(keys)-1])
	}
	for i := 1; i < len(keys); i++ {
		if holeStrengths[keys[i]] > holeStrengths[keys[i-1]] {
			t.Fatalf("keys out of order at %d: %s above %s", i, keys[i], keys[i-1])
		}
	}
}

func TestHoleCards(t *testing.T) {
	for _, key := range HoleKeys() {
		cards, ok := HoleCards(key)
		if !ok {
			t.Fatalf("no representative cards for %s", key)
		}
		if got := HoleKey(cards); got != key {
			t.Errorf("HoleCards(%s) round-tripped to %s", key, got)
		}
	}

	if _, ok := HoleCards("ZZ"); ok {
		t.Error("unknown key produced cards")
	}
}
