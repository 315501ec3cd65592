package main

import (
	"context"

	"github.com/desertthunder/likeshift/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes the annotated example configuration file.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}
	r.writePlainln("✓ Wrote %s", path)
	r.writePlain("Edit it and re-run your command.\n")
	return nil
}

// SetupDatabase creates the run ledger database and its schema.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	config := r.config
	if path := cmd.String("config"); path != "" {
		if loaded, err := shared.LoadConfig(path); err == nil {
			config = loaded
		}
	}

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	if err := shared.InitSchema(db); err != nil {
		return err
	}

	r.writePlainln("✓ Database ready at %s", config.Database.Path)
	return nil
}
