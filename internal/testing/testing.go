// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/desertthunder/likeshift/internal/services"
)

// MockPage is a scriptable test double for [services.PageService].
//
// Rounds holds the anchors visible after each scroll; once rounds are
// exhausted the last snapshot keeps repeating, which is how a page that has
// stopped rendering behaves.
type MockPage struct {
	Rounds      [][]services.Anchor
	Cookies     map[string]string
	Cfg         *services.PageConfig
	PageOrigin  string
	ScrollCalls int
	AnchorCalls int
	ScrollErr   error
	AnchorsErr  error
	CookieErr   error
}

func (m *MockPage) Config(ctx context.Context) (*services.PageConfig, error) {
	if m.Cfg == nil {
		return &services.PageConfig{APIKey: "test-key", Context: []byte(`{}`), SessionIndex: "0"}, nil
	}
	return m.Cfg, nil
}

func (m *MockPage) Cookie(ctx context.Context, name string) (string, error) {
	if m.CookieErr != nil {
		return "", m.CookieErr
	}
	return m.Cookies[name], nil
}

func (m *MockPage) Origin(ctx context.Context) (string, error) {
	if m.PageOrigin == "" {
		return "https://www.youtube.com", nil
	}
	return m.PageOrigin, nil
}

func (m *MockPage) ScrollToBottom(ctx context.Context) error {
	m.ScrollCalls++
	return m.ScrollErr
}

func (m *MockPage) Anchors(ctx context.Context) ([]services.Anchor, error) {
	if m.AnchorsErr != nil {
		return nil, m.AnchorsErr
	}
	idx := m.AnchorCalls
	m.AnchorCalls++
	if len(m.Rounds) == 0 {
		return nil, nil
	}
	if idx >= len(m.Rounds) {
		idx = len(m.Rounds) - 1
	}
	return m.Rounds[idx], nil
}

// NoSettle is a settle strategy that returns immediately, for fast tests.
type NoSettle struct{}

func (NoSettle) Settle(ctx context.Context) error { return ctx.Err() }

// MockAPI is a scriptable test double for [services.VideoAPI] that records
// every call in order.
type MockAPI struct {
	PlaylistID      string
	CreateErr       error
	AddItemsErrs    map[int]error  // Keyed by call index
	AddItemsHook    func(call int) // Observes each AddPlaylistItems call as it starts
	RemoveLikeErrs  map[string]error
	AddLikeErrs     map[string]error
	CreateCalls     int
	AddItemsCalls   [][]string
	RemoveLikeCalls []string
	AddLikeCalls    []string
}

func (m *MockAPI) CreatePlaylist(ctx context.Context, title string) (string, error) {
	m.CreateCalls++
	if m.CreateErr != nil {
		return "", m.CreateErr
	}
	if m.PlaylistID == "" {
		return "PLtest", nil
	}
	return m.PlaylistID, nil
}

func (m *MockAPI) AddPlaylistItems(ctx context.Context, playlistID string, videoIDs []string) error {
	idx := len(m.AddItemsCalls)
	if m.AddItemsHook != nil {
		m.AddItemsHook(idx)
	}
	m.AddItemsCalls = append(m.AddItemsCalls, videoIDs)
	if err, ok := m.AddItemsErrs[idx]; ok {
		return err
	}
	return nil
}

func (m *MockAPI) RemoveLike(ctx context.Context, videoID string) error {
	m.RemoveLikeCalls = append(m.RemoveLikeCalls, videoID)
	if err, ok := m.RemoveLikeErrs[videoID]; ok {
		return err
	}
	return nil
}

func (m *MockAPI) AddLike(ctx context.Context, videoID string) error {
	m.AddLikeCalls = append(m.AddLikeCalls, videoID)
	if err, ok := m.AddLikeErrs[videoID]; ok {
		return err
	}
	return nil
}

// MemoryDownloader captures delivered artifacts in memory.
type MemoryDownloader struct {
	Artifacts  map[string][]byte
	DeliverErr error
}

func (m *MemoryDownloader) Deliver(ctx context.Context, filename string, data []byte) (string, error) {
	if m.DeliverErr != nil {
		return "", m.DeliverErr
	}
	if m.Artifacts == nil {
		m.Artifacts = make(map[string][]byte)
	}
	m.Artifacts[filename] = data
	return "mem://" + filename, nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}
