package workpool

import (
	"sync/atomic"
	"testing"
)

func TestParallelForCoversEveryIndex(t *testing.T) {
	p := New(4)
	defer p.Stop()

	const n = 1000
	seen := make([]int32, n)
	p.ParallelFor(0, n, func(i int) {
		atomic.AddInt32(&seen[i], 1)
	})

	for i, v := range seen {
		if v != 1 {
			t.Fatalf("index %d visited %d times, want 1", i, v)
		}
	}
}

func TestParallelForEmptyRange(t *testing.T) {
	p := New(2)
	defer p.Stop()

	called := false
	p.ParallelFor(5, 5, func(int) { called = true })
	if called {
		t.Fatal("fn should not run for an empty range")
	}
}

func TestParallelColumnsOrderAndCoverage(t *testing.T) {
	p := New(4)
	defer p.Stop()

	const numCols = 200
	results := ParallelColumns(p, numCols, func(c int) int { return c * 2 })

	if len(results) != numCols {
		t.Fatalf("len(results) = %d, want %d", len(results), numCols)
	}
	for c, v := range results {
		if v != c*2 {
			t.Fatalf("results[%d] = %d, want %d", c, v, c*2)
		}
	}
}

func TestParallelColumnsSmallInline(t *testing.T) {
	// numColumns <= 8 takes the inline path; verify it still works without a pool.
	results := ParallelColumns[int](nil, 4, func(c int) int { return c + 1 })
	want := []int{1, 2, 3, 4}
	for i, v := range results {
		if v != want[i] {
			t.Fatalf("results[%d] = %d, want %d", i, v, want[i])
		}
	}
}
