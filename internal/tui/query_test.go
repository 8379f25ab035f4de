package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crsthn-slv/poker-game-sub001/poker"
)

func TestParseQuery(t *testing.T) {
	t.Run("hole only defaults to one opponent", func(t *testing.T) {
		q, err := ParseQuery("SA SK")
		require.NoError(t, err)

		assert.Equal(t, poker.MustParseCards("SA SK"), q.Hole)
		assert.Empty(t, q.Board)
		assert.Equal(t, 1, q.Opponents)
		assert.Equal(t, 0, q.Iterations, "zero means the estimator default")
	})

	t.Run("full grammar", func(t *testing.T) {
		q, err := ParseQuery("SA SK / H7 D8 C9 vs 3 x 10000")
		require.NoError(t, err)

		assert.Equal(t, poker.MustParseCards("SA SK"), q.Hole)
		assert.Equal(t, poker.MustParseCards("H7 D8 C9"), q.Board)
		assert.Equal(t, 3, q.Opponents)
		assert.Equal(t, 10000, q.Iterations)
	})

	t.Run("options before board and lowercase keywords", func(t *testing.T) {
		q, err := ParseQuery("ha da VS 2 X 500 / c2 s9")
		require.NoError(t, err)

		assert.Equal(t, poker.MustParseCards("HA DA"), q.Hole)
		assert.Equal(t, poker.MustParseCards("C2 S9"), q.Board)
		assert.Equal(t, 2, q.Opponents)
		assert.Equal(t, 500, q.Iterations)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		cases := []struct {
			name    string
			input   string
			wantErr string
		}{
			{"empty", "", "empty query"},
			{"one hole card", "SA", "exactly two hole cards"},
			{"three hole cards", "SA SK SQ", "exactly two hole cards"},
			{"six board cards", "SA SK / H2 H3 H4 H5 H6 H7", "at most five"},
			{"two board sections", "SA SK / H2 / H3", "one board section"},
			{"duplicate across sections", "SA SK / SA H9", `duplicate card SA`},
			{"duplicate in hole", "D7 D7", `duplicate card D7`},
			{"bad card", "SA XK", `invalid card code "XK"`},
			{"vs without count", "SA SK vs", "opponent count"},
			{"vs zero", "SA SK vs 0", `bad opponent count "0"`},
			{"x not a number", "SA SK x lots", `bad iteration count "lots"`},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := ParseQuery(tc.input)
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
			})
		}
	})
}
