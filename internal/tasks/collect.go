package tasks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/likeshift/internal/formatter"
	"github.com/desertthunder/likeshift/internal/models"
	"github.com/desertthunder/likeshift/internal/shared"
)

// SettleStrategy waits for lazily rendered content to appear after a scroll.
//
// The production strategy is a fixed delay: rendering latency is unbounded
// and the page offers no readiness signal, so the wait is a heuristic, not a
// guarantee. Swapping in a real readiness predicate later does not change the
// collector contract.
type SettleStrategy interface {
	Settle(ctx context.Context) error
}

// FixedDelay settles by sleeping a constant duration.
type FixedDelay struct {
	Delay time.Duration
}

func (f FixedDelay) Settle(ctx context.Context) error {
	timer := time.NewTimer(f.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// CollectOpts bounds the scroll-collection loop.
type CollectOpts struct {
	MaxRounds          int            // Scroll rounds before giving up (default 100)
	StabilityThreshold int            // Consecutive no-growth rounds treated as exhaustion (default 3)
	HardCap            int            // Safety valve on set size (default 5000)
	Settle             SettleStrategy // Post-scroll wait (default fixed 1500ms)
}

func (o *CollectOpts) applyDefaults() {
	if o.MaxRounds <= 0 {
		o.MaxRounds = 100
	}
	if o.StabilityThreshold <= 0 {
		o.StabilityThreshold = 3
	}
	if o.HardCap <= 0 {
		o.HardCap = 5000
	}
	if o.Settle == nil {
		o.Settle = FixedDelay{Delay: 1500 * time.Millisecond}
	}
}

// Collect incrementally discovers liked-video ids from the rendered list.
//
// Each round scrolls to the bottom, waits for the page to settle, then scans
// the rendered anchors for unseen ids. The loop terminates when the set stops
// growing for StabilityThreshold consecutive rounds, when MaxRounds is
// reached, or when the set hits HardCap. The collector cannot distinguish
// "genuinely no more items" from "rendering stalled"; the stability threshold
// is the accepted heuristic for both.
//
// An empty set after the loop is a hard failure ([shared.ErrNoItemsFound]):
// it almost always means the wrong page is open or the markup changed.
func (e *MigrationEngine) Collect(ctx context.Context, prog chan<- ProgressUpdate, opts CollectOpts) (*models.VideoSet, error) {
	opts.applyDefaults()

	set := models.NewVideoSet()
	noChange := 0

	for round := 1; round <= opts.MaxRounds; round++ {
		if err := e.page.ScrollToBottom(ctx); err != nil {
			return nil, fmt.Errorf("scroll failed on round %d: %w", round, err)
		}
		if err := opts.Settle.Settle(ctx); err != nil {
			return nil, err
		}

		anchors, err := e.page.Anchors(ctx)
		if err != nil {
			return nil, fmt.Errorf("anchor scan failed on round %d: %w", round, err)
		}

		prevSize := set.Len()
		for _, anchor := range anchors {
			id := formatter.VideoURLID(anchor.Href)
			if id == "" {
				continue
			}
			set.Add(models.NewVideoRecord(id, strings.TrimSpace(anchor.Title)))
		}

		e.logger.Info("scroll round complete", "round", round, "videos", set.Len())
		e.sendProgress(prog, scrollRoundUpdate(round, set.Len()))

		if set.Len() == prevSize {
			noChange++
			if noChange >= opts.StabilityThreshold {
				break
			}
		} else {
			noChange = 0
		}

		if set.Len() >= opts.HardCap {
			e.logger.Warn("hard cap reached, stopping collection", "cap", opts.HardCap)
			break
		}
	}

	if set.Len() == 0 {
		return nil, fmt.Errorf("%w: open the liked videos playlist (list=LL) and retry", shared.ErrNoItemsFound)
	}

	return set, nil
}
