package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/crsthn-slv/poker-game-sub001/poker"
)

// Query is one parsed explorer request:
//
//	<hole> [/ <board>] [vs N] [x ITERS]
//
// e.g. "SA SK / H7 D8 C9 vs 2 x 10000". Tokens are space separated.
type Query struct {
	Hole       []poker.Card
	Board      []poker.Card
	Opponents  int
	Iterations int
}

// ParseQuery parses the explorer input grammar. Opponents defaults to 1;
// Iterations zero means the estimator default.
func ParseQuery(input string) (Query, error) {
	q := Query{Opponents: 1}

	fields := strings.Fields(input)
	if len(fields) == 0 {
		return q, errors.New("empty query")
	}

	inBoard := false
	i := 0
	for i < len(fields) {
		tok := fields[i]
		switch {
		case tok == "/":
			if inBoard {
				return q, errors.New("only one board section allowed")
			}
			inBoard = true
			i++

		case strings.EqualFold(tok, "vs"):
			if i+1 >= len(fields) {
				return q, errors.New("vs needs an opponent count")
			}
			n, err := strconv.Atoi(fields[i+1])
			if err != nil || n < 1 {
				return q, fmt.Errorf("bad opponent count %q", fields[i+1])
			}
			q.Opponents = n
			i += 2

		case strings.EqualFold(tok, "x"):
			if i+1 >= len(fields) {
				return q, errors.New("x needs an iteration count")
			}
			n, err := strconv.Atoi(fields[i+1])
			if err != nil || n < 1 {
				return q, fmt.Errorf("bad iteration count %q", fields[i+1])
			}
			q.Iterations = n
			i += 2

		default:
			card, err := poker.ParseCard(tok)
			if err != nil {
				return q, err
			}
			if inBoard {
				q.Board = append(q.Board, card)
			} else {
				q.Hole = append(q.Hole, card)
			}
			i++
		}
	}

	if len(q.Hole) != 2 {
		return q, fmt.Errorf("need exactly two hole cards, got %d", len(q.Hole))
	}
	if len(q.Board) > 5 {
		return q, fmt.Errorf("board takes at most five cards, got %d", len(q.Board))
	}

	all := append(append([]poker.Card(nil), q.Hole...), q.Board...)
	if card, dup := poker.FindDuplicate(all); dup {
		return q, fmt.Errorf("duplicate card %s", card.Code())
	}

	return q, nil
}
