package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/desertthunder/likeshift/internal/shared"
)

func newTestBridge(t *testing.T, handler http.HandlerFunc) *BridgeClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewBridgeClient(server.URL, server.Client())
}

func TestBridgeClient(t *testing.T) {
	t.Run("Config", func(t *testing.T) {
		bridge := newTestBridge(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/page/config" {
				t.Errorf("path = %s", r.URL.Path)
			}
			w.Write([]byte(`{"apiKey":"key123","context":{"client":{}},"sessionIndex":"1"}`))
		})

		cfg, err := bridge.Config(context.Background())
		if err != nil {
			t.Fatalf("Config() error = %v", err)
		}
		if cfg.APIKey != "key123" || cfg.SessionIndex != "1" {
			t.Errorf("config = %+v", cfg)
		}
		if len(cfg.Context) == 0 {
			t.Error("context blob should be carried opaquely")
		}
	})

	t.Run("Config without api key fails", func(t *testing.T) {
		bridge := newTestBridge(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"apiKey":""}`))
		})

		_, err := bridge.Config(context.Background())
		if !errors.Is(err, shared.ErrMissingAPIKey) {
			t.Errorf("Config() error = %v, want ErrMissingAPIKey", err)
		}
	})

	t.Run("Cookie", func(t *testing.T) {
		bridge := newTestBridge(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/page/cookie" {
				t.Errorf("path = %s", r.URL.Path)
			}
			if r.URL.Query().Get("name") != "SAPISID" {
				t.Errorf("name param = %s", r.URL.Query().Get("name"))
			}
			w.Write([]byte(`{"value":"cookie-value"}`))
		})

		value, err := bridge.Cookie(context.Background(), "SAPISID")
		if err != nil {
			t.Fatalf("Cookie() error = %v", err)
		}
		if value != "cookie-value" {
			t.Errorf("Cookie() = %s", value)
		}
	})

	t.Run("Origin", func(t *testing.T) {
		bridge := newTestBridge(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"origin":"https://www.youtube.com"}`))
		})

		origin, err := bridge.Origin(context.Background())
		if err != nil {
			t.Fatalf("Origin() error = %v", err)
		}
		if origin != "https://www.youtube.com" {
			t.Errorf("Origin() = %s", origin)
		}
	})

	t.Run("ScrollToBottom posts", func(t *testing.T) {
		var gotMethod, gotPath string
		bridge := newTestBridge(t, func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotPath = r.URL.Path
			w.WriteHeader(http.StatusNoContent)
		})

		if err := bridge.ScrollToBottom(context.Background()); err != nil {
			t.Fatalf("ScrollToBottom() error = %v", err)
		}
		if gotMethod != http.MethodPost || gotPath != "/page/scroll" {
			t.Errorf("request = %s %s, want POST /page/scroll", gotMethod, gotPath)
		}
	})

	t.Run("Anchors", func(t *testing.T) {
		bridge := newTestBridge(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"href":"/watch?v=abc","title":"A"},{"href":"/watch?v=def","title":"B"}]`))
		})

		anchors, err := bridge.Anchors(context.Background())
		if err != nil {
			t.Fatalf("Anchors() error = %v", err)
		}
		if len(anchors) != 2 || anchors[0].Href != "/watch?v=abc" || anchors[1].Title != "B" {
			t.Errorf("Anchors() = %+v", anchors)
		}
	})

	t.Run("non-2xx surfaces a status error", func(t *testing.T) {
		bridge := newTestBridge(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		err := bridge.ScrollToBottom(context.Background())
		if StatusOf(err) != http.StatusBadGateway {
			t.Errorf("StatusOf(err) = %d, want 502", StatusOf(err))
		}
	})

	t.Run("unreachable bridge reports service unavailable", func(t *testing.T) {
		bridge := NewBridgeClient("http://127.0.0.1:1", nil)

		_, err := bridge.Origin(context.Background())
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("Origin() error = %v, want ErrServiceUnavailable", err)
		}
	})
}
