package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/crsthn-slv/poker-game-sub001/internal/equity"
	"github.com/crsthn-slv/poker-game-sub001/internal/randutil"
)

func TestBuildChartRanksAllHoldings(t *testing.T) {
	estimator := equity.New(equity.Config{})
	rows := buildChart(estimator, 1, 40, randutil.New(1))

	if len(rows) != 169 {
		t.Fatalf("Expected 169 holdings, got %d", len(rows))
	}

	seen := make(map[string]bool)
	indexOf := make(map[string]int)
	for i, row := range rows {
		if seen[row.key] {
			t.Errorf("Holding %s appears twice", row.key)
		}
		seen[row.key] = true
		indexOf[row.key] = i

		if row.result.Trials != 40 {
			t.Errorf("Holding %s ran %d trials, expected 40", row.key, row.result.Trials)
		}
		if i > 0 && rows[i-1].result.WinRate() < row.result.WinRate() {
			t.Errorf("Chart not ranked at %d: %s %.3f above %s %.3f",
				i, rows[i-1].key, rows[i-1].result.WinRate(), row.key, row.result.WinRate())
		}
	}

	// Even at 40 iterations the gap between the best and worst holdings
	// is far wider than the sampling noise
	if indexOf["AA"] > indexOf["72o"] {
		t.Errorf("Pocket aces ranked below seven-deuce: %d vs %d", indexOf["AA"], indexOf["72o"])
	}
}

func TestRenderChartIsPlainText(t *testing.T) {
	estimator := equity.New(equity.Config{})
	rows := buildChart(estimator, 1, 10, randutil.New(2))

	var buf bytes.Buffer
	renderChart(&buf, rows, 1, 10, 25*time.Millisecond)
	out := buf.String()

	for _, want := range []string{"rank", "hand", "win", "strength", "AA", "169 holdings"} {
		if !strings.Contains(out, want) {
			t.Errorf("Chart missing %q", want)
		}
	}
	if strings.ContainsRune(out, '\x1b') {
		t.Error("Chart output contains escape sequences; the file artifact must stay plain")
	}
}

func TestChartCmdWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.txt")
	cmd := &ChartCmd{Opponents: 1, Iterations: 10, Output: path, Seed: 42}

	if err := cmd.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Reading chart: %v", err)
	}
	if !strings.Contains(string(data), "starting holdings vs 1 opponent(s)") {
		t.Errorf("Chart file missing header:\n%s", string(data)[:min(200, len(data))])
	}
	if got := strings.Count(string(data), "\n"); got < 169 {
		t.Errorf("Chart file has %d lines, expected at least 169", got)
	}
}
