// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// collectCommand discovers the liked set without mutating anything.
func collectCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "collect",
		Usage: "Scroll-collect liked video ids from the open tab (read-only)",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the collected set as JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Collect,
	}
}

// backupCommand handles the backup pipeline and the gated destructive pass.
func backupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "backup",
		Aliases: []string{"run"},
		Usage:   "Collect liked videos, export them, and clone them to a private playlist",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "format",
				Usage: "Export artifact formats (json, csv, markdown)",
			},
			&cli.BoolFlag{
				Name:  "delete",
				Usage: "Remove the like from every video after a verified backup",
			},
			&cli.BoolFlag{
				Name:  "yes",
				Usage: "Skip confirmation prompts",
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the created backup playlist in the browser",
			},
		},
		Action: r.BackupRun,
	}
}

// restoreCommand replays likes from an exported backup document.
func restoreCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "restore",
		Usage: "Re-like every video from a backup JSON file",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "file",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "yes",
				Usage: "Skip confirmation prompt",
			},
		},
		Action: r.Restore,
	}
}

// runsCommand reads the local run ledger.
func runsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "runs",
		Usage: "Inspect past pipeline runs",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List recorded runs, most recent first",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "kind",
						Usage: "Filter by run kind (backup, purge, restore)",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of runs to show",
						Value: 20,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.RunsList,
			},
		},
	}
}

// bridgeCommand handles direct page bridge calls for debugging.
func bridgeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "bridge",
		Usage: "Direct calls to the local page bridge",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Print the embedded page configuration",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.BridgeConfig,
			},
			{
				Name:   "anchors",
				Usage:  "Print the currently rendered video anchors",
				Action: r.BridgeAnchors,
			},
		},
	}
}

// setupCommand handles setup operations for configuration and the run ledger.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Create a config.toml from the embedded template",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Initialize the run ledger database",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// authCommand handles authentication checks
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Inspect session authentication",
		Commands: []*cli.Command{
			{
				Name:   "status",
				Usage:  "Check that the session cookie is present and signable",
				Action: r.AuthStatus,
			},
			{
				Name:  "curl",
				Usage: "Extract the session cookie from a DevTools 'Copy as cURL' capture",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "curl-file",
						Usage: "Path to .sh file containing the cURL command",
					},
					&cli.StringFlag{
						Name:  "curl",
						Usage: "cURL command string",
					},
				},
				Action: r.AuthCurl,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for the interactive migration flow.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for the migration flow",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "delete",
				Usage: "Remove likes after a verified backup",
			},
		},
		Action: r.TUI,
	}
}
