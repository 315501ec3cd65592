// package tasks implements the liked-videos migration pipelines.
//
// The core abstraction is MigrationEngine, which orchestrates collection,
// backup (export artifact + remote playlist clone), the backup-gated
// destructive unlike loop, and restore from an exported backup document.
// Operations emit progress updates via channels for non-blocking status
// reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/likeshift/internal/formatter"
	"github.com/desertthunder/likeshift/internal/models"
	"github.com/desertthunder/likeshift/internal/services"
	"github.com/desertthunder/likeshift/internal/shared"
	"golang.org/x/time/rate"
)

// MigrationEngine holds the collaborators every pipeline run needs.
//
// Pipelines are strictly sequential: nothing here runs concurrently, because
// the remote service penalizes burst traffic.
type MigrationEngine struct {
	page       services.PageService
	api        services.VideoAPI
	downloader services.Downloader
	logger     *log.Logger
	now        func() time.Time
}

// NewMigrationEngine creates an engine with the provided collaborators.
func NewMigrationEngine(page services.PageService, api services.VideoAPI, downloader services.Downloader, logger *log.Logger) *MigrationEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &MigrationEngine{
		page:       page,
		api:        api,
		downloader: downloader,
		logger:     logger,
		now:        time.Now,
	}
}

// SetLogger swaps the engine's logger, e.g. to a file logger under a TUI.
func (e *MigrationEngine) SetLogger(logger *log.Logger) {
	if logger != nil {
		e.logger = logger
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *MigrationEngine) sendProgress(prog chan<- ProgressUpdate, update ProgressUpdate) {
	if prog == nil {
		return
	}
	select {
	case prog <- update:
	default:
	}
}

// BackupOpts configures the backup pipeline.
type BackupOpts struct {
	Formats    []string      // Export artifact renditions (default ["json"])
	ChunkSize  int           // Videos per clone call (default 50)
	ChunkDelay time.Duration // Pause between clone calls (default 500ms)
}

func (o *BackupOpts) applyDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{"json"}
	}
	if o.ChunkSize <= 0 {
		o.ChunkSize = 50
	}
	if o.ChunkDelay <= 0 {
		o.ChunkDelay = 500 * time.Millisecond
	}
}

// Backup produces the two backup legs for a collected set.
//
// The export leg serializes the set and hands the artifact to the downloader;
// its failure is recorded but advisory. The clone leg creates a date-stamped
// private playlist and appends every video in chunked batched calls; only the
// clone leg (creation included) decides [models.BackupOutcome.AllSucceeded].
//
// A playlist-creation failure returns the partial outcome together with the
// error so callers still see the export leg's result.
func (e *MigrationEngine) Backup(ctx context.Context, prog chan<- ProgressUpdate, set *models.VideoSet, opts BackupOpts) (*models.BackupOutcome, error) {
	if e.api == nil {
		return nil, fmt.Errorf("%w: video API not initialized", shared.ErrServiceUnavailable)
	}
	opts.applyDefaults()

	outcome := &models.BackupOutcome{}
	videos := set.Videos()
	dateStr := e.now().Format("2006-01-02")

	doc := models.NewExportDocument(set, e.now())
	outcome.ExportWritten = true
	for _, format := range opts.Formats {
		data, ext, err := formatter.Render(doc, format)
		if err != nil {
			return nil, err
		}

		path, err := e.downloader.Deliver(ctx, fmt.Sprintf("liked_videos_%s.%s", dateStr, ext), data)
		if err != nil {
			e.logger.Warn("export artifact not delivered", "format", format, "error", err)
			e.sendProgress(prog, exportFailedUpdate(format, err))
			outcome.ExportWritten = false
			continue
		}

		if outcome.ExportPath == "" {
			outcome.ExportPath = path
		}
		e.sendProgress(prog, exportUpdate(format, path))
	}

	title := fmt.Sprintf("Liked Backup %s", dateStr)
	playlistID, err := e.api.CreatePlaylist(ctx, title)
	if err != nil {
		return outcome, fmt.Errorf("%w: %v", shared.ErrPlaylistCreateFailed, err)
	}
	outcome.PlaylistID = playlistID
	outcome.PlaylistCreated = true
	e.logger.Info("playlist created", "title", title, "id", playlistID)
	e.sendProgress(prog, createPlaylistUpdate(title, playlistID))

	// Progress is reported from inside the chunk callback so long clone runs
	// surface each chunk as it lands rather than replaying updates at the end.
	done := 0
	batch, _, err := RunChunked(ctx, videos, opts.ChunkSize, opts.ChunkDelay, func(ctx context.Context, chunk []models.VideoRecord) error {
		ids := make([]string, len(chunk))
		for i, v := range chunk {
			ids[i] = v.ID
		}

		start := done
		addErr := e.api.AddPlaylistItems(ctx, playlistID, ids)
		done += len(chunk)
		if addErr != nil {
			e.logger.Error("clone chunk failed", "start", start, "end", done, "status", services.StatusOf(addErr))
			e.sendProgress(prog, cloneFailedUpdate(start, done, services.StatusOf(addErr)))
			return addErr
		}
		e.sendProgress(prog, cloneProgressUpdate(done, len(videos)))
		return nil
	})
	outcome.Clone = batch

	if err != nil {
		return outcome, err
	}
	return outcome, nil
}

// Purge removes the "like" rating from every collected video, strictly gated
// on a verified backup.
//
// Fails closed with [shared.ErrBackupIncomplete] before issuing any remote
// call when the backup outcome is missing or incomplete. Items are processed
// one at a time in first-discovery order with fixed pacing; individual
// failures are logged and counted but never retried within the run.
func (e *MigrationEngine) Purge(ctx context.Context, prog chan<- ProgressUpdate, set *models.VideoSet, backup *models.BackupOutcome, delay time.Duration) (*models.MutationRunReport, error) {
	if e.api == nil {
		return nil, fmt.Errorf("%w: video API not initialized", shared.ErrServiceUnavailable)
	}
	if backup == nil || !backup.AllSucceeded() {
		return nil, fmt.Errorf("%w: refusing to unlike without a verified backup", shared.ErrBackupIncomplete)
	}
	if delay <= 0 {
		delay = 150 * time.Millisecond
	}

	videos := set.Videos()
	report := &models.MutationRunReport{}
	limiter := rate.NewLimiter(rate.Every(delay), 1)

	for i, video := range videos {
		if err := limiter.Wait(ctx); err != nil {
			return report, err
		}

		err := e.api.RemoveLike(ctx, video.ID)
		report.Record(video.ID, services.StatusOf(err), err == nil)

		if err != nil {
			e.logger.Warn("unlike failed", "id", video.ID, "status", services.StatusOf(err))
			e.sendProgress(prog, unlikeFailedUpdate(i+1, len(videos), video.ID, services.StatusOf(err)))
			continue
		}

		// Thin the progress log; per-item lines drown the UI on large sets.
		if report.Succeeded%10 == 0 {
			e.sendProgress(prog, unlikeProgressUpdate(report.Succeeded, len(videos)))
		}
	}

	e.logger.Info("purge complete", "attempted", report.Attempted, "succeeded", report.Succeeded, "failed", report.Failed)
	return report, nil
}

// Restore replays "like" actions from an exported backup document.
//
// The document is parsed before any network call; malformed or empty input
// fails fast. Pacing is deliberately slower than the purge loop because
// re-liking at scale carries a higher abuse-detection risk.
func (e *MigrationEngine) Restore(ctx context.Context, prog chan<- ProgressUpdate, document []byte, delay time.Duration) (*models.MutationRunReport, error) {
	if e.api == nil {
		return nil, fmt.Errorf("%w: video API not initialized", shared.ErrServiceUnavailable)
	}
	if delay <= 0 {
		delay = 600 * time.Millisecond
	}

	ids, err := formatter.ParseBackup(document)
	if err != nil {
		return nil, err
	}

	report := &models.MutationRunReport{}
	limiter := rate.NewLimiter(rate.Every(delay), 1)

	for i, id := range ids {
		if err := limiter.Wait(ctx); err != nil {
			return report, err
		}

		err := e.api.AddLike(ctx, id)
		report.Record(id, services.StatusOf(err), err == nil)

		if err != nil {
			e.logger.Warn("relike failed", "id", id, "status", services.StatusOf(err))
			e.sendProgress(prog, relikeFailedUpdate(i+1, len(ids), id, services.StatusOf(err)))
		} else if i%5 == 0 {
			e.sendProgress(prog, relikeProgressUpdate(i+1, len(ids), id))
		}
	}

	e.logger.Info("restore complete", "attempted", report.Attempted, "succeeded", report.Succeeded, "failed", report.Failed)
	return report, nil
}
