package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/likeshift/internal/models"
	"github.com/desertthunder/likeshift/internal/shared"
	"github.com/desertthunder/likeshift/internal/tasks"
	"github.com/urfave/cli/v3"
)

// collectOpts maps the configured collector bounds into engine options.
func (r *Runner) collectOpts() tasks.CollectOpts {
	opts := tasks.CollectOpts{
		MaxRounds:          r.config.Collector.MaxRounds,
		StabilityThreshold: r.config.Collector.StabilityThreshold,
		HardCap:            r.config.Collector.HardCap,
	}
	if ms := r.config.Collector.SettleMillis; ms > 0 {
		opts.Settle = tasks.FixedDelay{Delay: time.Duration(ms) * time.Millisecond}
	}
	return opts
}

// backupOpts maps configured export formats and pacing into engine options.
func (r *Runner) backupOpts(formats []string) tasks.BackupOpts {
	if len(formats) == 0 {
		formats = r.config.Export.Formats
	}
	return tasks.BackupOpts{
		Formats:    formats,
		ChunkSize:  50,
		ChunkDelay: time.Duration(r.config.Pacing.CloneChunkMillis) * time.Millisecond,
	}
}

// Collect discovers the liked set from the open tab without mutating anything.
func (r *Runner) Collect(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.buildEngine(ctx)
	if err != nil {
		return err
	}

	r.logger.Info("starting collection")
	r.writePlain("Collecting liked videos...\n")

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			r.writePlain("   %s\n", update.Message)
		}
	}()

	set, err := engine.Collect(ctx, progressCh, r.collectOpts())
	close(progressCh)

	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(models.NewExportDocument(set, time.Now()), cmd.Bool("pretty"))
	}

	r.writePlainln("✓ Collected %d liked videos", set.Len())
	return nil
}

// BackupRun runs the full pipeline: collect, export, clone, and optionally
// the backup-gated destructive unlike pass.
func (r *Runner) BackupRun(ctx context.Context, cmd *cli.Command) error {
	deleteAfter := cmd.Bool("delete")
	skipConfirm := cmd.Bool("yes")

	if deleteAfter && !skipConfirm {
		warning := "Likes will be REMOVED from every collected video after backup.\nThe videos stay in the backup playlist and JSON export. Continue"
		if !r.confirm(warning) {
			r.writePlain("Aborted.\n")
			return nil
		}
	}

	engine, err := r.buildEngine(ctx)
	if err != nil {
		return err
	}

	r.logger.Info("starting backup run", "delete", deleteAfter)
	r.writePlain("Collecting liked videos...\n")

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			switch update.Phase {
			case tasks.Scroll:
				r.writePlain("   %s\n", update.Message)
			case tasks.ExportArtifact:
				r.writePlain("📄 %s\n", update.Message)
			case tasks.CreatePlaylist:
				r.writePlain("📺 %s\n", update.Message)
			case tasks.CloneChunk:
				r.writePlain("   %s\n", update.Message)
			case tasks.Unlike:
				r.writePlain("🗑️  %s\n", update.Message)
			}
		}
	}()
	defer close(progressCh)

	set, err := engine.Collect(ctx, progressCh, r.collectOpts())
	if err != nil {
		return err
	}
	r.writePlain("Found %d liked videos\n\n", set.Len())

	startedAt := time.Now()
	backup, err := engine.Backup(ctx, progressCh, set, r.backupOpts(cmd.StringSlice("format")))

	if backup != nil {
		r.recordRun(&models.RunRecord{
			Kind:       models.RunBackup,
			Attempted:  set.Len(),
			Succeeded:  backup.Clone.Succeeded,
			Failed:     backup.Clone.Failed,
			PlaylistID: backup.PlaylistID,
			ExportPath: backup.ExportPath,
			Ok:         backup.AllSucceeded(),
			StartedAt:  startedAt,
			FinishedAt: time.Now(),
		})
	}
	if err != nil {
		return err
	}

	r.writePlainHeader("Backup Complete")
	r.writePlain("Playlist: %s\n", backup.PlaylistID)
	if backup.ExportPath != "" {
		r.writePlain("Export: %s\n", backup.ExportPath)
	}
	r.writePlain("Chunks: %d ok, %d failed\n", backup.Clone.Succeeded, backup.Clone.Failed)

	if cmd.Bool("open") {
		if err := shared.OpenBrowser(shared.PlaylistURL(backup.PlaylistID)); err != nil {
			r.logger.Warn("failed to open browser", "error", err)
		}
	}

	if !deleteAfter {
		return nil
	}

	if !backup.AllSucceeded() {
		return fmt.Errorf("%w: %d clone chunks failed, likes were NOT removed", shared.ErrBackupIncomplete, backup.Clone.Failed)
	}

	r.writePlain("\nRemoving likes...\n")
	purgeStart := time.Now()
	delay := time.Duration(r.config.Pacing.UnlikeItemMillis) * time.Millisecond

	report, err := engine.Purge(ctx, progressCh, set, backup, delay)
	if report != nil {
		r.recordRun(&models.RunRecord{
			Kind:       models.RunPurge,
			Attempted:  report.Attempted,
			Succeeded:  report.Succeeded,
			Failed:     report.Failed,
			PlaylistID: backup.PlaylistID,
			Ok:         report.Failed == 0,
			StartedAt:  purgeStart,
			FinishedAt: time.Now(),
		})
	}
	if err != nil {
		return err
	}

	r.writePlainHeader("Purge Complete")
	r.writePlain("Unliked: %d/%d\n", report.Succeeded, report.Attempted)
	if report.Failed > 0 {
		r.writePlain("Failed: %d\n", report.Failed)
		for _, failure := range report.Failures {
			r.writePlain("  - %s (status %d)\n", failure.ID, failure.Status)
		}
	}
	r.writePlain("Reload the page to see older videos again.\n")

	return nil
}
