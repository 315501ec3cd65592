package services

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/likeshift/internal/shared"
)

// stubPage serves cookies without a live bridge.
type stubPage struct {
	cookies   map[string]string
	cookieErr error
}

func (s *stubPage) Config(ctx context.Context) (*PageConfig, error) { return &PageConfig{}, nil }

func (s *stubPage) Cookie(ctx context.Context, name string) (string, error) {
	if s.cookieErr != nil {
		return "", s.cookieErr
	}
	return s.cookies[name], nil
}

func (s *stubPage) Origin(ctx context.Context) (string, error) { return "", nil }
func (s *stubPage) ScrollToBottom(ctx context.Context) error   { return nil }
func (s *stubPage) Anchors(ctx context.Context) ([]Anchor, error) {
	return nil, nil
}

func TestSessionAuthProvider_Headers(t *testing.T) {
	const origin = "https://www.youtube.com"

	t.Run("signature binds timestamp, cookie and origin", func(t *testing.T) {
		page := &stubPage{cookies: map[string]string{"SAPISID": "secret-cookie-value"}}
		provider := NewSessionAuthProvider(page, "0")
		provider.now = func() time.Time { return time.Unix(1700000000, 0) }

		headers, err := provider.Headers(context.Background(), origin)
		if err != nil {
			t.Fatalf("Headers() error = %v", err)
		}

		digest := sha1.Sum([]byte("1700000000 secret-cookie-value " + origin))
		want := fmt.Sprintf("SAPISIDHASH 1700000000_%s", hex.EncodeToString(digest[:]))
		if headers.Authorization != want {
			t.Errorf("Authorization = %s\nwant %s", headers.Authorization, want)
		}
		if headers.Origin != origin {
			t.Errorf("Origin = %s, want %s", headers.Origin, origin)
		}
		if headers.AuthUser != "0" {
			t.Errorf("AuthUser = %s, want 0", headers.AuthUser)
		}
		if headers.ContentType != "application/json" {
			t.Errorf("ContentType = %s", headers.ContentType)
		}
	})

	t.Run("different timestamps produce different signatures", func(t *testing.T) {
		page := &stubPage{cookies: map[string]string{"SAPISID": "secret"}}
		provider := NewSessionAuthProvider(page, "")

		provider.now = func() time.Time { return time.Unix(1700000000, 0) }
		first, err := provider.Headers(context.Background(), origin)
		if err != nil {
			t.Fatalf("Headers() error = %v", err)
		}

		provider.now = func() time.Time { return time.Unix(1700000001, 0) }
		second, err := provider.Headers(context.Background(), origin)
		if err != nil {
			t.Fatalf("Headers() error = %v", err)
		}

		if first.Authorization == second.Authorization {
			t.Error("signatures must not be cached across timestamps")
		}
	})

	t.Run("empty account index defaults to primary", func(t *testing.T) {
		page := &stubPage{cookies: map[string]string{"SAPISID": "secret"}}
		provider := NewSessionAuthProvider(page, "")

		headers, err := provider.Headers(context.Background(), origin)
		if err != nil {
			t.Fatalf("Headers() error = %v", err)
		}
		if headers.AuthUser != "0" {
			t.Errorf("AuthUser = %s, want 0", headers.AuthUser)
		}
	})

	t.Run("missing cookie fails", func(t *testing.T) {
		page := &stubPage{cookies: map[string]string{}}
		provider := NewSessionAuthProvider(page, "0")

		_, err := provider.Headers(context.Background(), origin)
		if !errors.Is(err, shared.ErrAuthUnavailable) {
			t.Errorf("Headers() error = %v, want ErrAuthUnavailable", err)
		}
	})

	t.Run("cookie read failure propagates", func(t *testing.T) {
		page := &stubPage{cookieErr: errors.New("bridge down")}
		provider := NewSessionAuthProvider(page, "0")

		_, err := provider.Headers(context.Background(), origin)
		if err == nil || !strings.Contains(err.Error(), "session cookie") {
			t.Errorf("Headers() error = %v, want cookie read failure", err)
		}
	})
}

func TestAuthHeaders_Apply(t *testing.T) {
	headers := AuthHeaders{
		Authorization: "SAPISIDHASH 1_abc",
		Origin:        "https://www.youtube.com",
		AuthUser:      "2",
		ContentType:   "application/json",
	}

	applied := make(map[string]string)
	headers.Apply(func(key, value string) { applied[key] = value })

	want := map[string]string{
		"Authorization":   "SAPISIDHASH 1_abc",
		"X-Origin":        "https://www.youtube.com",
		"X-Goog-AuthUser": "2",
		"Content-Type":    "application/json",
	}
	for key, value := range want {
		if applied[key] != value {
			t.Errorf("header %s = %s, want %s", key, applied[key], value)
		}
	}
}
