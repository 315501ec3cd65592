package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/desertthunder/likeshift/internal/models"
	"github.com/desertthunder/likeshift/internal/shared"
	"github.com/desertthunder/likeshift/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Restore re-likes every video found in a backup export file.
func (r *Runner) Restore(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("file")
	if path == "" {
		return fmt.Errorf("%w: backup file path required", shared.ErrMissingArgument)
	}

	document, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read backup file: %w", err)
	}

	if !cmd.Bool("yes") {
		if !r.confirm(fmt.Sprintf("Re-like every video listed in %s", path)) {
			r.writePlain("Aborted.\n")
			return nil
		}
	}

	engine, err := r.buildEngine(ctx)
	if err != nil {
		return err
	}

	r.logger.Info("starting restore", "file", path)
	r.writePlain("Restoring likes from %s...\n", path)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			r.writePlain("   %s\n", update.Message)
		}
	}()
	defer close(progressCh)

	startedAt := time.Now()
	delay := time.Duration(r.config.Pacing.RestoreItemMillis) * time.Millisecond

	report, err := engine.Restore(ctx, progressCh, document, delay)
	if report != nil {
		r.recordRun(&models.RunRecord{
			Kind:       models.RunRestore,
			Attempted:  report.Attempted,
			Succeeded:  report.Succeeded,
			Failed:     report.Failed,
			Ok:         report.Failed == 0,
			StartedAt:  startedAt,
			FinishedAt: time.Now(),
		})
	}
	if err != nil {
		return err
	}

	r.writePlainHeader("Restore Complete")
	r.writePlain("Re-liked: %d/%d\n", report.Succeeded, report.Attempted)
	if report.Failed > 0 {
		r.writePlain("Failed: %d\n", report.Failed)
		for _, failure := range report.Failures {
			r.writePlain("  - %s (status %d)\n", failure.ID, failure.Status)
		}
	}

	return nil
}
