// Session auth provider implementing the platform's cookie-signing scheme.
//
// The authorization value is a SHA-1 digest over the current unix timestamp,
// the SAPISID cookie and the page origin. The timestamp is part of the signed
// material and the remote service enforces a validity window, so headers are
// recomputed for every request batch and never cached.
package services

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/desertthunder/likeshift/internal/shared"
)

const sessionCookieName = "SAPISID"

// AuthHeaders are the request-authentication headers for a single call.
type AuthHeaders struct {
	Authorization string
	Origin        string
	AuthUser      string
	ContentType   string
}

// Apply sets the headers on an outbound request header map.
func (h AuthHeaders) Apply(set func(key, value string)) {
	set("Authorization", h.Authorization)
	set("X-Origin", h.Origin)
	set("X-Goog-AuthUser", h.AuthUser)
	set("Content-Type", h.ContentType)
}

// SessionAuthProvider derives [AuthHeaders] from the page's session cookie.
type SessionAuthProvider struct {
	page     PageService
	authUser string
	now      func() time.Time
}

// NewSessionAuthProvider creates a provider reading credentials from the page.
//
// authUser is the account index from the page config; it defaults to "0"
// (the primary account) when empty.
func NewSessionAuthProvider(page PageService, authUser string) *SessionAuthProvider {
	if authUser == "" {
		authUser = "0"
	}
	return &SessionAuthProvider{
		page:     page,
		authUser: authUser,
		now:      time.Now,
	}
}

// Headers computes fresh auth headers bound to the current timestamp.
func (p *SessionAuthProvider) Headers(ctx context.Context, origin string) (AuthHeaders, error) {
	secret, err := p.page.Cookie(ctx, sessionCookieName)
	if err != nil {
		return AuthHeaders{}, fmt.Errorf("failed to read session cookie: %w", err)
	}
	if secret == "" {
		return AuthHeaders{}, fmt.Errorf("%w: %s cookie absent", shared.ErrAuthUnavailable, sessionCookieName)
	}

	ts := p.now().Unix()
	digest := sha1.Sum([]byte(fmt.Sprintf("%d %s %s", ts, secret, origin)))

	return AuthHeaders{
		Authorization: fmt.Sprintf("SAPISIDHASH %d_%s", ts, hex.EncodeToString(digest[:])),
		Origin:        origin,
		AuthUser:      p.authUser,
		ContentType:   "application/json",
	}, nil
}
