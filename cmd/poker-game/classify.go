package main

import (
	"fmt"

	"github.com/crsthn-slv/poker-game-sub001/poker"
)

// ClassifyCmd prints the classification for a hand
type ClassifyCmd struct {
	Cards []string `arg:"" required:"" help:"Card codes, suit first (SA HK D7 ...); 2 cards classify as a holding, 5+ as a hand"`
}

func (c *ClassifyCmd) Run() error {
	cards, err := parseCardArgs(c.Cards)
	if err != nil {
		return err
	}

	var result poker.Classification
	if len(cards) == 2 {
		result = poker.ClassifyHole(cards)
	} else {
		result = poker.Classify(cards)
	}

	fmt.Printf("%s\n", handStyle.Render(formatCards(cards)))
	fmt.Printf("%s  %s\n",
		categoryStyle.Render(result.Category.String()),
		result.Description)

	if len(cards) == 2 && result.Category != poker.Invalid {
		fmt.Printf("%s\n", infoStyle.Render(fmt.Sprintf("%s · strength %.3f",
			poker.HoleKey(cards), poker.HoleStrength(cards))))
	}
	return nil
}

func parseCardArgs(codes []string) ([]poker.Card, error) {
	cards := make([]poker.Card, 0, len(codes))
	for _, code := range codes {
		card, err := poker.ParseCard(code)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}
