package main

import (
	"context"
	"os"

	"github.com/desertthunder/likeshift/internal/services"
	"github.com/desertthunder/likeshift/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	bridge := services.NewBridgeClient(config.Bridge.URL, nil)
	downloader := services.NewFileDownloader(config.Export.Dir)

	runner := NewRunner(RunnerOpts{
		Config:     config,
		Bridge:     bridge,
		Downloader: downloader,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "likeshift",
		Usage:    "Back up, purge, and restore a YouTube liked-videos collection",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
