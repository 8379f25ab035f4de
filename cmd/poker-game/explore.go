package main

import (
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/crsthn-slv/poker-game-sub001/internal/equity"
	"github.com/crsthn-slv/poker-game-sub001/internal/tui"
)

// ExploreCmd launches the interactive equity explorer
type ExploreCmd struct {
	Workers    int    `help:"Worker goroutines per estimate (0 sizes from the CPU count)"`
	HandPolicy string `default:"best-of-seven" help:"Hand completion policy (best-of-seven or first-five)"`
	TiePolicy  string `default:"loss" help:"Tie scoring (loss, split or win)"`
	Seed       *int64 `help:"Deterministic session seed (optional)"`
	LogFile    string `help:"Append debug logs to this file (the explorer owns the terminal)"`
}

func (c *ExploreCmd) Run() error {
	completion, err := equity.ParseCompletionPolicy(c.HandPolicy)
	if err != nil {
		return err
	}
	tie, err := equity.ParseTiePolicy(c.TiePolicy)
	if err != nil {
		return err
	}

	// The explorer owns the terminal, so logs go to a file or nowhere
	logger := log.New(io.Discard)
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logger = log.NewWithOptions(f, log.Options{
			Level:           log.DebugLevel,
			ReportTimestamp: true,
			TimeFormat:      "15:04:05",
		})
	}

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}

	estimator := equity.New(equity.Config{
		Completion: completion,
		Tie:        tie,
		Pool:       equity.NewPool(c.Workers, logger),
		Logger:     logger,
	})

	model := tui.New(estimator, seed, logger)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("explorer: %w", err)
	}
	return nil
}
