package apiclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"truongphat/internal/models"
)

// How close to expiry a token may get before the guard refreshes it.
const refreshThreshold = 30 * time.Second

// ErrSessionExpired is returned once a refresh fails and the session has
// been cleared. The caller must log in again.
var ErrSessionExpired = errors.New("session expired, please log in again")

// Guard is an http.RoundTripper that attaches the staff access token to
// outgoing requests and transparently refreshes it shortly before expiry.
// When a refresh fails the stored session is cleared and the logout
// callback fires, so a dead session never loops on failing refreshes.
type Guard struct {
	base       http.RoundTripper
	store      SessionStore
	refreshURL string
	onLogout   func()

	mu  sync.Mutex
	now func() time.Time
}

// NewGuard wraps base with session handling. A nil base uses
// http.DefaultTransport; onLogout may be nil.
func NewGuard(base http.RoundTripper, store SessionStore, refreshURL string, onLogout func()) *Guard {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Guard{
		base:       base,
		store:      store,
		refreshURL: refreshURL,
		onLogout:   onLogout,
		now:        time.Now,
	}
}

// RoundTrip attaches a bearer token when a session exists. Requests without
// a session pass through unauthenticated and let the server answer 401.
func (g *Guard) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := g.accessToken(req)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return g.base.RoundTrip(req)
	}

	authed := req.Clone(req.Context())
	authed.Header.Set("Authorization", "Bearer "+token)
	return g.base.RoundTrip(authed)
}

// accessToken returns a token valid for at least the refresh threshold,
// refreshing the session when needed. The mutex makes sure concurrent
// requests trigger a single refresh.
func (g *Guard) accessToken(req *http.Request) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	session, err := g.store.Load()
	if err != nil {
		return "", err
	}
	if session == nil {
		return "", nil
	}

	expiry, ok := tokenExpiry(session.AccessToken)
	if !ok {
		// A token whose expiry cannot be read is treated as expired; the
		// stored expiration field is informational only.
		g.endSession()
		return "", fmt.Errorf("%w: malformed access token", ErrSessionExpired)
	}

	ttl := expiry.Sub(g.now())
	if ttl > refreshThreshold {
		return session.AccessToken, nil
	}
	if ttl <= 0 {
		// The session sat idle past its access token; rotation is not
		// attempted on a token that already expired.
		g.endSession()
		return "", fmt.Errorf("%w: access token expired", ErrSessionExpired)
	}

	refreshed, err := g.refresh(req, session)
	if err != nil {
		// A failed refresh ends the session; keeping it would retry the
		// same dead refresh token on every request.
		g.endSession()
		return "", fmt.Errorf("%w: %v", ErrSessionExpired, err)
	}

	session.TokenPair = *refreshed
	if err := g.store.Save(session); err != nil {
		return "", err
	}
	return session.AccessToken, nil
}

func (g *Guard) endSession() {
	_ = g.store.Clear()
	if g.onLogout != nil {
		g.onLogout()
	}
}

// tokenExpiry reads the exp claim without verifying the signature; the
// client only schedules refreshes with it, the server stays authoritative.
// A token that cannot be decoded, or carries no exp claim, reports !ok.
func tokenExpiry(accessToken string) (time.Time, bool) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

func (g *Guard) refresh(req *http.Request, session *Session) (*models.TokenPair, error) {
	body, err := json.Marshal(map[string]string{
		"accessToken":  session.AccessToken,
		"refreshToken": session.RefreshToken,
	})
	if err != nil {
		return nil, err
	}

	refreshReq, err := http.NewRequestWithContext(req.Context(), http.MethodPost, g.refreshURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	refreshReq.Header.Set("Content-Type", "application/json")

	resp, err := g.base.RoundTrip(refreshReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("refresh returned %d", resp.StatusCode)
	}

	pair := &models.TokenPair{}
	if err := json.NewDecoder(resp.Body).Decode(pair); err != nil {
		return nil, err
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		return nil, errors.New("refresh returned empty credentials")
	}
	return pair, nil
}
