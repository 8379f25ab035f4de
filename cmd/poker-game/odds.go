package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"text/tabwriter"
	"time"

	"github.com/crsthn-slv/poker-game-sub001/internal/randutil"
	"github.com/crsthn-slv/poker-game-sub001/poker"
)

// OddsCmd estimates win/tie odds for named hands against each other
type OddsCmd struct {
	Hands      []string `arg:"" required:"" help:"Hands as quoted card pairs, suit first ('SA SK' 'HQ HJ')"`
	Board      string   `short:"b" help:"Community cards (e.g. 'HT S7 D8')"`
	Iterations int      `short:"i" default:"10000" help:"Number of Monte Carlo iterations"`
	Breakdown  bool     `short:"p" help:"Show per-category frequencies"`
	Seed       *int64   `help:"Random seed for reproducible results"`
}

func (c *OddsCmd) Run() error {
	if c.Iterations < 1 {
		return fmt.Errorf("iterations must be at least 1, got %d", c.Iterations)
	}

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}
	rng := randutil.New(seed)

	hands := make([][]poker.Card, 0, len(c.Hands))
	var all []poker.Card
	for i, arg := range c.Hands {
		hand, err := poker.ParseCards(arg)
		if err != nil {
			return fmt.Errorf("hand %d: %w", i+1, err)
		}
		if len(hand) != 2 {
			return fmt.Errorf("hand %d: need exactly 2 cards, got %d", i+1, len(hand))
		}
		hands = append(hands, hand)
		all = append(all, hand...)
	}
	if len(hands) < 2 {
		return fmt.Errorf("need at least two hands to compare")
	}

	var board []poker.Card
	if c.Board != "" {
		var err error
		board, err = poker.ParseCards(c.Board)
		if err != nil {
			return fmt.Errorf("board: %w", err)
		}
		if len(board) > 5 {
			return fmt.Errorf("board takes at most five cards, got %d", len(board))
		}
		all = append(all, board...)
	}

	if card, dup := poker.FindDuplicate(all); dup {
		return fmt.Errorf("duplicate card %s", card.Code())
	}

	start := time.Now()
	results := runOdds(hands, board, c.Iterations, rng)
	elapsed := time.Since(start)

	displayOdds(os.Stdout, results, board, c.Breakdown, c.Iterations, elapsed)
	return nil
}

type handResult struct {
	cards      []poker.Card
	wins       int
	ties       int
	categories map[poker.HandCategory]int
}

// runOdds deals the board out to five cards each trial and scores every
// hand best-of-seven. A sole best hand takes a win; shared best hands
// each take a tie.
func runOdds(hands [][]poker.Card, board []poker.Card, iterations int, rng *rand.Rand) []handResult {
	results := make([]handResult, len(hands))
	for i := range results {
		results[i].cards = hands[i]
		results[i].categories = make(map[poker.HandCategory]int)
	}

	var used []poker.Card
	for _, hand := range hands {
		used = append(used, hand...)
	}
	used = append(used, board...)
	available := poker.Remaining(used)

	values := make([]poker.HandValue, len(hands))
	full := make([]poker.Card, 0, 5)
	seven := make([]poker.Card, 0, 7)

	for i := 0; i < iterations; i++ {
		poker.Shuffle(available, rng)
		cursor := 0

		full = append(full[:0], board...)
		for len(full) < 5 {
			full = append(full, available[cursor])
			cursor++
		}

		for h, hole := range hands {
			seven = append(seven[:0], hole...)
			seven = append(seven, full...)
			values[h] = poker.EvaluateBest(seven)
			results[h].categories[values[h].Category]++
		}

		best := values[0]
		for _, v := range values[1:] {
			if v.Compare(best) > 0 {
				best = v
			}
		}

		winners := 0
		for _, v := range values {
			if v.Compare(best) == 0 {
				winners++
			}
		}

		for h, v := range values {
			if v.Compare(best) != 0 {
				continue
			}
			if winners == 1 {
				results[h].wins++
			} else {
				results[h].ties++
			}
		}
	}

	return results
}

func displayOdds(w io.Writer, results []handResult, board []poker.Card, breakdown bool, iterations int, elapsed time.Duration) {
	if len(board) > 0 {
		fmt.Fprintf(w, "%s\n%s\n\n", headerStyle.Render("board"), formatCards(board))
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\n",
		headerStyle.Render("hand"),
		headerStyle.Render("win"),
		headerStyle.Render("tie"))

	for _, result := range results {
		winPct := float64(result.wins) / float64(iterations) * 100
		tiePct := float64(result.ties) / float64(iterations) * 100
		fmt.Fprintf(tw, "%s\t%s\t%s\n",
			handStyle.Render(formatCards(result.cards)),
			winStyle.Render(fmt.Sprintf("%.1f%%", winPct)),
			tieStyle.Render(fmt.Sprintf("%.1f%%", tiePct)))
	}
	tw.Flush()

	if breakdown {
		fmt.Fprintln(w)
		displayBreakdown(w, results, iterations)
	}

	fmt.Fprintf(w, "\n%d iterations in %v\n", iterations, elapsed.Truncate(time.Millisecond))
}

func displayBreakdown(w io.Writer, results []handResult, iterations int) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "%s", categoryStyle.Render("hand"))
	for _, result := range results {
		fmt.Fprintf(tw, "\t%s", handStyle.Render(formatCards(result.cards)))
	}
	fmt.Fprintln(tw)

	for cat := poker.RoyalFlush; cat >= poker.HighCard; cat-- {
		seen := false
		for _, result := range results {
			if result.categories[cat] > 0 {
				seen = true
				break
			}
		}
		if !seen {
			continue
		}

		fmt.Fprintf(tw, "%s", categoryStyle.Render(cat.String()))
		for _, result := range results {
			count := result.categories[cat]
			if count > 0 {
				pct := float64(count) / float64(iterations) * 100
				fmt.Fprintf(tw, "\t%s", percentStyle.Render(fmt.Sprintf("%.1f%%", pct)))
			} else {
				fmt.Fprintf(tw, "\t%s", percentStyle.Render("."))
			}
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()
}
