package tasks

import (
	"context"
	"time"

	"github.com/desertthunder/likeshift/internal/models"
	"github.com/desertthunder/likeshift/internal/services"
	"golang.org/x/time/rate"
)

// RunChunked partitions items into fixed-size contiguous chunks in original
// order and invokes fn on each, strictly sequentially, pacing chunks with a
// single fixed delay.
//
// A failed chunk does not abort the run: failures accumulate into the
// returned outcome so a bulk operation makes maximum forward progress through
// sporadic transient errors. The only early exit is context cancellation,
// which returns the partial outcome alongside ctx.Err().
func RunChunked[T any](ctx context.Context, items []T, size int, delay time.Duration, fn func(context.Context, []T) error) (models.BatchOutcome, []models.ChunkResult, error) {
	if size <= 0 {
		size = 50
	}

	limiter := rate.NewLimiter(rate.Every(delay), 1)
	var results []models.ChunkResult

	for start := 0; start < len(items); start += size {
		if err := limiter.Wait(ctx); err != nil {
			return models.ReduceChunks(results), results, err
		}

		end := min(start+size, len(items))
		err := fn(ctx, items[start:end])
		results = append(results, models.ChunkResult{
			Start:  start,
			End:    end,
			OK:     err == nil,
			Status: services.StatusOf(err),
		})

		if ctx.Err() != nil {
			return models.ReduceChunks(results), results, ctx.Err()
		}
	}

	return models.ReduceChunks(results), results, nil
}
