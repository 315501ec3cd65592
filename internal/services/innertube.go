// Client for the platform's versioned internal API.
//
// Every operation is a JSON-body POST to <root>/youtubei/v1/<op>?key=<apiKey>,
// authenticated with freshly computed session headers. The page context blob
// from [PageConfig] is echoed back verbatim in each request body.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/desertthunder/likeshift/internal/shared"
)

// VideoAPI defines the remote mutation operations the pipelines use.
type VideoAPI interface {
	// CreatePlaylist creates a private playlist and returns its id.
	CreatePlaylist(ctx context.Context, title string) (string, error)

	// AddPlaylistItems appends the video ids to a playlist in one batched call.
	AddPlaylistItems(ctx context.Context, playlistID string, videoIDs []string) error

	// RemoveLike removes the "like" rating from a single video.
	RemoveLike(ctx context.Context, videoID string) error

	// AddLike applies the "like" rating to a single video.
	AddLike(ctx context.Context, videoID string) error
}

// InnerTubeService implements [VideoAPI] against the internal API.
type InnerTubeService struct {
	root       string
	apiKey     string
	context    json.RawMessage
	origin     string
	auth       AuthProvider
	httpClient *http.Client
}

// NewInnerTubeService creates a client bound to one page session.
//
// root defaults to the page origin when empty; client defaults to
// [http.DefaultClient].
func NewInnerTubeService(root string, cfg *PageConfig, origin string, auth AuthProvider, client *http.Client) *InnerTubeService {
	if root == "" {
		root = origin
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &InnerTubeService{
		root:       root,
		apiKey:     cfg.APIKey,
		context:    cfg.Context,
		origin:     origin,
		auth:       auth,
		httpClient: client,
	}
}

// post issues one authenticated API call. Headers are recomputed per call
// because the signature is bound to the timestamp.
func (s *InnerTubeService) post(ctx context.Context, op string, body map[string]any, result any) error {
	body["context"] = s.context

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/youtubei/v1/%s?key=%s", s.root, op, url.QueryEscape(s.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	headers, err := s.auth.Headers(ctx, s.origin)
	if err != nil {
		return err
	}
	headers.Apply(req.Header.Set)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Code: resp.StatusCode, Op: op}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// CreatePlaylist creates a new private playlist with the given title.
func (s *InnerTubeService) CreatePlaylist(ctx context.Context, title string) (string, error) {
	var created struct {
		PlaylistID string `json:"playlistId"`
	}

	body := map[string]any{
		"title":         title,
		"privacyStatus": "PRIVATE",
	}
	if err := s.post(ctx, "playlist/create", body, &created); err != nil {
		return "", err
	}

	if created.PlaylistID == "" {
		return "", fmt.Errorf("%w: response contained no playlist id", shared.ErrPlaylistCreateFailed)
	}

	return created.PlaylistID, nil
}

// AddPlaylistItems appends the videos to the playlist, one add-action per id.
func (s *InnerTubeService) AddPlaylistItems(ctx context.Context, playlistID string, videoIDs []string) error {
	actions := make([]map[string]string, len(videoIDs))
	for i, id := range videoIDs {
		actions[i] = map[string]string{
			"action":       "ACTION_ADD_VIDEO",
			"addedVideoId": id,
		}
	}

	body := map[string]any{
		"playlistId": playlistID,
		"actions":    actions,
	}
	return s.post(ctx, "browse/edit_playlist", body, nil)
}

// RemoveLike removes the "like" rating from one video.
func (s *InnerTubeService) RemoveLike(ctx context.Context, videoID string) error {
	return s.post(ctx, "like/removelike", map[string]any{
		"target": map[string]string{"videoId": videoID},
	}, nil)
}

// AddLike applies the "like" rating to one video.
func (s *InnerTubeService) AddLike(ctx context.Context, videoID string) error {
	return s.post(ctx, "like/like", map[string]any{
		"target": map[string]string{"videoId": videoID},
	}, nil)
}
