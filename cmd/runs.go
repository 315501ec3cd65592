package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/likeshift/internal/models"
	"github.com/desertthunder/likeshift/internal/repositories"
	"github.com/desertthunder/likeshift/internal/shared"
	"github.com/urfave/cli/v3"
)

// RunsList prints recent ledger entries, newest first.
func (r *Runner) RunsList(ctx context.Context, cmd *cli.Command) error {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := shared.InitSchema(db); err != nil {
		return err
	}

	kind := models.RunKind(cmd.String("kind"))
	repo := repositories.NewRunRepository(db)

	records, err := repo.List(kind, cmd.Int("limit"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(records, true)
	}

	if len(records) == 0 {
		r.writePlain("No runs recorded.\n")
		return nil
	}

	r.writePlainHeader("Runs")
	for _, record := range records {
		status := "ok"
		if !record.Ok {
			status = "failed"
		}
		line := fmt.Sprintf("#%d %-8s %s  %d/%d ok (%s)",
			record.Sequence, record.Kind,
			record.StartedAt.Format("2006-01-02 15:04"),
			record.Succeeded, record.Attempted, status)
		if record.PlaylistID != "" {
			line += "  playlist=" + record.PlaylistID
		}
		r.writePlainln("%s", line)
	}

	return nil
}
