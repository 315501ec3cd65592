package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/likeshift/internal/services"
	"github.com/desertthunder/likeshift/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthStatus verifies that a signed authorization header can be derived
// from the live page session.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	config, err := r.bridge.Config(ctx)
	if err != nil {
		return err
	}

	origin, err := r.bridge.Origin(ctx)
	if err != nil {
		return err
	}

	auth := services.NewSessionAuthProvider(r.bridge, config.SessionIndex)
	headers, err := auth.Headers(ctx, origin)
	if err != nil {
		return err
	}

	r.writePlainHeader("Auth Status")
	r.writePlainln("Origin: %s", headers.Origin)
	r.writePlainln("Account index: %s", headers.AuthUser)
	r.writePlainln("Authorization: %s...", headers.Authorization[:24])
	r.writePlainln("✓ Session credentials available")
	return nil
}

// AuthCurl inspects a captured curl command and reports whether it carries
// the session cookie the signing scheme needs. Useful when the page bridge
// is unavailable and credentials have to be checked by hand.
func (r *Runner) AuthCurl(ctx context.Context, cmd *cli.Command) error {
	var (
		headers *shared.CurlHeaders
		err     error
	)

	switch {
	case cmd.String("curl-file") != "":
		headers, err = shared.ParseCurlFile(cmd.String("curl-file"))
	case cmd.String("curl") != "":
		headers, err = shared.ParseCurlCommand([]byte(cmd.String("curl")))
	default:
		return fmt.Errorf("%w: provide --curl-file or --curl", shared.ErrMissingArgument)
	}
	if err != nil {
		return err
	}

	r.writePlainHeader("Curl Inspection")
	r.writePlainln("Headers: %d", len(headers.Headers))
	for key := range headers.Headers {
		if strings.HasPrefix(strings.ToLower(key), "x-") || strings.EqualFold(key, "authorization") {
			r.writePlainln("  %s", key)
		}
	}

	if value, ok := headers.CookieValue("SAPISID"); ok {
		r.writePlainln("✓ SAPISID cookie present (%d chars)", len(value))
	} else {
		return fmt.Errorf("%w: no SAPISID cookie in capture", shared.ErrAuthUnavailable)
	}

	return nil
}
