package tasks

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/desertthunder/likeshift/internal/services"
	"github.com/desertthunder/likeshift/internal/shared"
	tu "github.com/desertthunder/likeshift/internal/testing"
)

func anchorsFor(ids ...string) []services.Anchor {
	anchors := make([]services.Anchor, len(ids))
	for i, id := range ids {
		anchors[i] = services.Anchor{
			Href:  fmt.Sprintf("/watch?v=%s&list=LL&index=%d", id, i+1),
			Title: "Video " + id,
		}
	}
	return anchors
}

func fastOpts() CollectOpts {
	return CollectOpts{Settle: tu.NoSettle{}}
}

func TestMigrationEngine_Collect(t *testing.T) {
	t.Run("accumulates across rounds and stops on stability", func(t *testing.T) {
		page := &tu.MockPage{
			Rounds: [][]services.Anchor{
				anchorsFor("aaa", "bbb"),
				anchorsFor("aaa", "bbb", "ccc", "ddd"),
				anchorsFor("aaa", "bbb", "ccc", "ddd", "eee"),
				// No further growth; the last snapshot repeats.
				anchorsFor("aaa", "bbb", "ccc", "ddd", "eee"),
			},
		}
		engine := NewMigrationEngine(page, &tu.MockAPI{}, &tu.MemoryDownloader{}, nil)

		set, err := engine.Collect(context.Background(), nil, fastOpts())
		if err != nil {
			t.Fatalf("Collect() error = %v", err)
		}
		if set.Len() != 5 {
			t.Errorf("Collect() found %d videos, want 5", set.Len())
		}
		// 3 growth rounds + 3 stable rounds to trip the default threshold.
		if page.ScrollCalls != 6 {
			t.Errorf("expected 6 scroll rounds, got %d", page.ScrollCalls)
		}
	})

	t.Run("preserves first-discovery order and dedupes", func(t *testing.T) {
		page := &tu.MockPage{
			Rounds: [][]services.Anchor{
				anchorsFor("one", "two"),
				anchorsFor("two", "one", "three"),
			},
		}
		engine := NewMigrationEngine(page, &tu.MockAPI{}, &tu.MemoryDownloader{}, nil)

		set, err := engine.Collect(context.Background(), nil, fastOpts())
		if err != nil {
			t.Fatalf("Collect() error = %v", err)
		}
		videos := set.Videos()
		want := []string{"one", "two", "three"}
		if len(videos) != len(want) {
			t.Fatalf("Collect() found %d videos, want %d", len(videos), len(want))
		}
		for i, id := range want {
			if videos[i].ID != id {
				t.Errorf("videos[%d].ID = %s, want %s", i, videos[i].ID, id)
			}
		}
	})

	t.Run("unchanged page yields an identical set on a second pass", func(t *testing.T) {
		rounds := [][]services.Anchor{
			anchorsFor("one", "two"),
			anchorsFor("one", "two", "three", "four"),
		}
		collect := func() []string {
			page := &tu.MockPage{Rounds: rounds}
			engine := NewMigrationEngine(page, &tu.MockAPI{}, &tu.MemoryDownloader{}, nil)
			set, err := engine.Collect(context.Background(), nil, fastOpts())
			if err != nil {
				t.Fatalf("Collect() error = %v", err)
			}
			ids := make([]string, 0, set.Len())
			for _, video := range set.Videos() {
				ids = append(ids, video.ID)
			}
			return ids
		}

		first := collect()
		second := collect()
		if len(first) != len(second) {
			t.Fatalf("passes disagree on size: %d vs %d", len(first), len(second))
		}
		for i := range first {
			if first[i] != second[i] {
				t.Errorf("passes diverge at %d: %s vs %s", i, first[i], second[i])
			}
		}
	})

	t.Run("skips anchors without a video id", func(t *testing.T) {
		page := &tu.MockPage{
			Rounds: [][]services.Anchor{
				{
					{Href: "/watch?v=real1", Title: "Real"},
					{Href: "/playlist?list=LL", Title: "Not a video"},
					{Href: "://bad url", Title: "Unparseable"},
				},
			},
		}
		engine := NewMigrationEngine(page, &tu.MockAPI{}, &tu.MemoryDownloader{}, nil)

		set, err := engine.Collect(context.Background(), nil, fastOpts())
		if err != nil {
			t.Fatalf("Collect() error = %v", err)
		}
		if set.Len() != 1 || !set.Has("real1") {
			t.Errorf("expected only real1 collected, got %v", set.Videos())
		}
	})

	t.Run("empty page is a hard failure", func(t *testing.T) {
		page := &tu.MockPage{Rounds: [][]services.Anchor{{}}}
		engine := NewMigrationEngine(page, &tu.MockAPI{}, &tu.MemoryDownloader{}, nil)

		_, err := engine.Collect(context.Background(), nil, fastOpts())
		if !errors.Is(err, shared.ErrNoItemsFound) {
			t.Errorf("Collect() error = %v, want ErrNoItemsFound", err)
		}
	})

	t.Run("hard cap stops collection", func(t *testing.T) {
		big := make([]string, 30)
		for i := range big {
			big[i] = fmt.Sprintf("vid%02d", i)
		}
		page := &tu.MockPage{Rounds: [][]services.Anchor{anchorsFor(big...)}}
		engine := NewMigrationEngine(page, &tu.MockAPI{}, &tu.MemoryDownloader{}, nil)

		opts := fastOpts()
		opts.HardCap = 10
		set, err := engine.Collect(context.Background(), nil, opts)
		if err != nil {
			t.Fatalf("Collect() error = %v", err)
		}
		if set.Len() != 30 {
			t.Errorf("cap stops further rounds, not the in-round scan: got %d videos", set.Len())
		}
		if page.ScrollCalls != 1 {
			t.Errorf("expected collection to stop after the capped round, got %d rounds", page.ScrollCalls)
		}
	})

	t.Run("max rounds bounds a page that keeps growing", func(t *testing.T) {
		rounds := make([][]services.Anchor, 10)
		ids := []string{}
		for i := range rounds {
			ids = append(ids, fmt.Sprintf("grow%02d", i))
			rounds[i] = anchorsFor(ids...)
		}
		page := &tu.MockPage{Rounds: rounds}
		engine := NewMigrationEngine(page, &tu.MockAPI{}, &tu.MemoryDownloader{}, nil)

		opts := fastOpts()
		opts.MaxRounds = 4
		set, err := engine.Collect(context.Background(), nil, opts)
		if err != nil {
			t.Fatalf("Collect() error = %v", err)
		}
		if set.Len() != 4 {
			t.Errorf("expected 4 videos after 4 bounded rounds, got %d", set.Len())
		}
		if page.ScrollCalls != 4 {
			t.Errorf("expected exactly MaxRounds scrolls, got %d", page.ScrollCalls)
		}
	})

	t.Run("scroll failure aborts the round", func(t *testing.T) {
		page := &tu.MockPage{
			Rounds:    [][]services.Anchor{anchorsFor("aaa")},
			ScrollErr: errors.New("bridge gone"),
		}
		engine := NewMigrationEngine(page, &tu.MockAPI{}, &tu.MemoryDownloader{}, nil)

		_, err := engine.Collect(context.Background(), nil, fastOpts())
		if err == nil {
			t.Fatal("Collect() expected error when scrolling fails")
		}
	})

	t.Run("cancelled context stops between rounds", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		page := &tu.MockPage{Rounds: [][]services.Anchor{anchorsFor("aaa")}}
		engine := NewMigrationEngine(page, &tu.MockAPI{}, &tu.MemoryDownloader{}, nil)

		_, err := engine.Collect(ctx, nil, fastOpts())
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Collect() error = %v, want context.Canceled", err)
		}
	})
}
