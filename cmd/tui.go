package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/likeshift/internal/shared"
	"github.com/desertthunder/likeshift/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for the backup pipeline.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.buildEngine(ctx)
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/likeshift-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)
	engine.SetLogger(fileLogger)

	opts := ui.RunOpts{
		Collect:    r.collectOpts(),
		Backup:     r.backupOpts(nil),
		Purge:      cmd.Bool("delete"),
		PurgeDelay: time.Duration(r.config.Pacing.UnlikeItemMillis) * time.Millisecond,
	}

	model := ui.NewModel(ctx, engine, opts)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
