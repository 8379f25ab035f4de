package equity

import (
	"io"
	"math/rand"
	"sort"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/crsthn-slv/poker-game-sub001/internal/randutil"
)

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestPoolRunSplitsIterations(t *testing.T) {
	pool := NewPool(4, discardLogger())

	var mu sync.Mutex
	var batches []int

	wins, ties := pool.Run(1003, randutil.New(1), func(n int, rng *rand.Rand) (uint32, uint32) {
		mu.Lock()
		batches = append(batches, n)
		mu.Unlock()
		return uint32(n), 1
	})

	if len(batches) != 4 {
		t.Fatalf("task ran %d times, want 4", len(batches))
	}
	total := 0
	for _, n := range batches {
		total += n
	}
	if total != 1003 {
		t.Errorf("batches sum to %d, want 1003", total)
	}

	// 1003 over 4 workers: three batches of 251 and one of 250.
	sort.Ints(batches)
	want := []int{250, 251, 251, 251}
	for i, n := range batches {
		if n != want[i] {
			t.Errorf("batch sizes = %v, want %v", batches, want)
			break
		}
	}

	if wins != 1003 || ties != 4 {
		t.Errorf("tallies = (%d, %d), want (1003, 4)", wins, ties)
	}
}

func TestPoolRunCollapsesSmallBatches(t *testing.T) {
	pool := NewPool(8, discardLogger())

	calls := 0
	parent := randutil.New(2)
	pool.Run(1, parent, func(n int, rng *rand.Rand) (uint32, uint32) {
		calls++
		if n != 1 {
			t.Errorf("batch size = %d, want 1", n)
		}
		if rng != parent {
			t.Error("single-batch run should reuse the caller's rng")
		}
		return 0, 0
	})

	if calls != 1 {
		t.Errorf("task ran %d times, want 1", calls)
	}
}

func TestPoolWorkerSeedsAreStable(t *testing.T) {
	run := func() []int64 {
		pool := NewPool(3, discardLogger())
		var mu sync.Mutex
		var draws []int64
		pool.Run(900, randutil.New(42), func(n int, rng *rand.Rand) (uint32, uint32) {
			v := rng.Int63()
			mu.Lock()
			draws = append(draws, v)
			mu.Unlock()
			return 0, 0
		})
		sort.Slice(draws, func(i, j int) bool { return draws[i] < draws[j] })
		return draws
	}

	a, b := run(), run()
	if len(a) != 3 || len(b) != 3 {
		t.Fatalf("worker counts %d and %d, want 3", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("worker streams changed across runs: %v vs %v", a, b)
		}
	}
}

func TestNewPoolDefaults(t *testing.T) {
	pool := NewPool(0, nil)
	if pool.Workers() < 1 || pool.Workers() > 8 {
		t.Errorf("default worker count %d out of expected range", pool.Workers())
	}

	if got := NewPool(6, nil).Workers(); got != 6 {
		t.Errorf("explicit worker count = %d, want 6", got)
	}
}
