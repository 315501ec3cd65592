package main

import (
	"context"

	"github.com/urfave/cli/v3"
)

// BridgeConfig prints the page configuration reported by the bridge.
func (r *Runner) BridgeConfig(ctx context.Context, cmd *cli.Command) error {
	config, err := r.bridge.Config(ctx)
	if err != nil {
		return err
	}

	origin, err := r.bridge.Origin(ctx)
	if err != nil {
		return err
	}

	return r.writeJSON(map[string]any{
		"apiKey":       config.APIKey,
		"sessionIndex": config.SessionIndex,
		"origin":       origin,
		"hasContext":   len(config.Context) > 0,
	}, cmd.Bool("pretty"))
}

// BridgeAnchors dumps the playlist anchors currently rendered on the page.
func (r *Runner) BridgeAnchors(ctx context.Context, cmd *cli.Command) error {
	anchors, err := r.bridge.Anchors(ctx)
	if err != nil {
		return err
	}

	r.writePlainln("%d anchors on page", len(anchors))
	for _, anchor := range anchors {
		r.writePlain("  %s  %s\n", anchor.Href, anchor.Title)
	}

	return nil
}
