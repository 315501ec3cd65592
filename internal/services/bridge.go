// Page bridge client.
//
// The tool runs outside the browser, but the API key, session context and the
// lazily-rendered liked list only exist inside the page. A companion
// extension exposes that tab over a localhost HTTP surface; BridgeClient is
// the client side of that contract and the production [PageService].
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/desertthunder/likeshift/internal/shared"
)

const defaultBridgeURL = "http://localhost:8127"

// BridgeClient implements [PageService] against the local page bridge.
type BridgeClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewBridgeClient creates a bridge client. An empty baseURL selects the
// default localhost address; a nil client selects [http.DefaultClient].
func NewBridgeClient(baseURL string, client *http.Client) *BridgeClient {
	if baseURL == "" {
		baseURL = defaultBridgeURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &BridgeClient{baseURL: baseURL, httpClient: client}
}

func (b *BridgeClient) doRequest(ctx context.Context, method, endpoint string, result any) error {
	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: bridge unreachable: %v", shared.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Code: resp.StatusCode, Op: "bridge " + endpoint}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode bridge response: %w", err)
		}
	}

	return nil
}

// Config reads the embedded page configuration from the tab.
//
// A response without an API key means the bridge is pointed at a page that
// never loaded ytcfg; that is an environment error, not a retryable one.
func (b *BridgeClient) Config(ctx context.Context) (*PageConfig, error) {
	var cfg PageConfig
	if err := b.doRequest(ctx, http.MethodGet, "/page/config", &cfg); err != nil {
		return nil, err
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: reload the page", shared.ErrMissingAPIKey)
	}
	return &cfg, nil
}

// Cookie returns the named cookie from the page's cookie store.
func (b *BridgeClient) Cookie(ctx context.Context, name string) (string, error) {
	var payload struct {
		Value string `json:"value"`
	}
	endpoint := "/page/cookie?name=" + url.QueryEscape(name)
	if err := b.doRequest(ctx, http.MethodGet, endpoint, &payload); err != nil {
		return "", err
	}
	return payload.Value, nil
}

// Origin returns the page origin.
func (b *BridgeClient) Origin(ctx context.Context) (string, error) {
	var payload struct {
		Origin string `json:"origin"`
	}
	if err := b.doRequest(ctx, http.MethodGet, "/page/origin", &payload); err != nil {
		return "", err
	}
	return payload.Origin, nil
}

// ScrollToBottom asks the page to scroll to the end of the rendered list.
func (b *BridgeClient) ScrollToBottom(ctx context.Context) error {
	return b.doRequest(ctx, http.MethodPost, "/page/scroll", nil)
}

// Anchors returns the currently rendered video title anchors.
func (b *BridgeClient) Anchors(ctx context.Context) ([]Anchor, error) {
	var anchors []Anchor
	if err := b.doRequest(ctx, http.MethodGet, "/page/anchors", &anchors); err != nil {
		return nil, err
	}
	return anchors, nil
}
