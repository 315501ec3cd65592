package tasks

import (
	"context"
	"errors"
	"testing"

	"github.com/desertthunder/likeshift/internal/services"
)

func TestRunChunked(t *testing.T) {
	items := make([]int, 120)
	for i := range items {
		items[i] = i
	}

	t.Run("covers every item exactly once in order", func(t *testing.T) {
		var seen []int
		outcome, results, err := RunChunked(context.Background(), items, 50, 0, func(ctx context.Context, chunk []int) error {
			seen = append(seen, chunk...)
			return nil
		})
		if err != nil {
			t.Fatalf("RunChunked() error = %v", err)
		}
		if len(seen) != len(items) {
			t.Fatalf("expected %d items processed, got %d", len(items), len(seen))
		}
		for i, v := range seen {
			if v != i {
				t.Fatalf("item order broken at index %d: got %d", i, v)
			}
		}
		if len(results) != 3 {
			t.Errorf("expected 3 chunks for 120 items at size 50, got %d", len(results))
		}
		if !outcome.AllSucceeded || outcome.Succeeded != 3 || outcome.Failed != 0 {
			t.Errorf("outcome = %+v, want all 3 succeeded", outcome)
		}
	})

	t.Run("chunk boundaries are contiguous", func(t *testing.T) {
		_, results, err := RunChunked(context.Background(), items, 50, 0, func(ctx context.Context, chunk []int) error {
			return nil
		})
		if err != nil {
			t.Fatalf("RunChunked() error = %v", err)
		}
		want := [][2]int{{0, 50}, {50, 100}, {100, 120}}
		for i, res := range results {
			if res.Start != want[i][0] || res.End != want[i][1] {
				t.Errorf("chunk %d = [%d,%d), want [%d,%d)", i, res.Start, res.End, want[i][0], want[i][1])
			}
		}
	})

	t.Run("continues past a failed chunk", func(t *testing.T) {
		call := 0
		outcome, results, err := RunChunked(context.Background(), items, 50, 0, func(ctx context.Context, chunk []int) error {
			call++
			if call == 2 {
				return &services.StatusError{Code: 429, Op: "add items"}
			}
			return nil
		})
		if err != nil {
			t.Fatalf("RunChunked() error = %v", err)
		}
		if call != 3 {
			t.Errorf("expected 3 calls (failure must not abort), got %d", call)
		}
		if outcome.AllSucceeded || outcome.Succeeded != 2 || outcome.Failed != 1 {
			t.Errorf("outcome = %+v, want 2 ok 1 failed", outcome)
		}
		if !results[0].OK || results[1].OK || !results[2].OK {
			t.Errorf("results OK flags = %v %v %v, want true false true", results[0].OK, results[1].OK, results[2].OK)
		}
		if results[1].Status != 429 {
			t.Errorf("failed chunk status = %d, want 429", results[1].Status)
		}
	})

	t.Run("cancellation returns partial outcome", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		outcome, results, err := RunChunked(ctx, items, 50, 0, func(ctx context.Context, chunk []int) error {
			cancel()
			return nil
		})
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("RunChunked() error = %v, want context.Canceled", err)
		}
		if len(results) != 1 {
			t.Errorf("expected 1 chunk before cancellation took effect, got %d", len(results))
		}
		if outcome.Succeeded != 1 {
			t.Errorf("partial outcome = %+v, want the completed chunk counted", outcome)
		}
	})

	t.Run("empty input yields no calls", func(t *testing.T) {
		calls := 0
		outcome, results, err := RunChunked(context.Background(), []int{}, 50, 0, func(ctx context.Context, chunk []int) error {
			calls++
			return nil
		})
		if err != nil {
			t.Fatalf("RunChunked() error = %v", err)
		}
		if calls != 0 || len(results) != 0 {
			t.Errorf("expected no calls for empty input, got %d calls", calls)
		}
		if !outcome.AllSucceeded {
			t.Errorf("empty outcome should report AllSucceeded")
		}
	})

	t.Run("non-positive size falls back to default", func(t *testing.T) {
		_, results, err := RunChunked(context.Background(), items, 0, 0, func(ctx context.Context, chunk []int) error {
			return nil
		})
		if err != nil {
			t.Fatalf("RunChunked() error = %v", err)
		}
		if len(results) != 3 {
			t.Errorf("expected default size 50 to yield 3 chunks, got %d", len(results))
		}
	})
}
