// package services defines clients for the page bridge and the platform's
// internal API, plus the session auth provider that signs requests.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Anchor is a rendered video link scraped from the page.
type Anchor struct {
	Href  string `json:"href"`
	Title string `json:"title"`
}

// PageConfig is the embedded page configuration (ytcfg) read from the tab.
//
// Context is carried opaquely: the API echoes it back verbatim on every call
// and its internal structure is not this tool's business.
type PageConfig struct {
	APIKey       string          `json:"apiKey"`
	Context      json.RawMessage `json:"context"`
	SessionIndex string          `json:"sessionIndex"`
}

// PageService is the capability interface over the browser tab where the
// session globals live. Implemented by [BridgeClient] in production and by
// fakes in tests.
type PageService interface {
	// Config reads the embedded page configuration.
	Config(ctx context.Context) (*PageConfig, error)

	// Cookie returns the named cookie value from the page's cookie store.
	// Returns an empty string when the cookie is absent.
	Cookie(ctx context.Context, name string) (string, error)

	// Origin returns the page origin, e.g. "https://www.youtube.com".
	Origin(ctx context.Context) (string, error)

	// ScrollToBottom triggers further lazy rendering of the liked list.
	ScrollToBottom(ctx context.Context) error

	// Anchors returns the currently rendered video title anchors.
	Anchors(ctx context.Context) ([]Anchor, error)
}

// AuthProvider derives short-lived request-authentication headers from the
// local session credentials.
type AuthProvider interface {
	Headers(ctx context.Context, origin string) (AuthHeaders, error)
}

// Downloader delivers a backup artifact and confirms hand-off.
//
// The production implementation writes to the export directory; the contract
// is "artifact handed off", not delivery-confirmed by anything downstream.
type Downloader interface {
	Deliver(ctx context.Context, filename string, data []byte) (string, error)
}

// StatusError reports a non-2xx response from the remote API.
type StatusError struct {
	Code int
	Op   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d", e.Op, e.Code)
}

// StatusOf extracts the HTTP status from an error chain, or 0 if none.
func StatusOf(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}
