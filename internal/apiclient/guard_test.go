package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"truongphat/internal/models"
)

func makeToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

// guardedGet performs one authenticated GET through the guard and returns
// the Authorization header the backend observed.
type backend struct {
	server       *httptest.Server
	refreshCount atomic.Int64
	refreshFails bool
	lastAuth     atomic.Value
	newPair      func() models.TokenPair
}

func newBackend(t *testing.T) *backend {
	b := &backend{}
	mux := http.NewServeMux()
	mux.HandleFunc("/auths/staff/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		b.refreshCount.Add(1)
		if b.refreshFails {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "invalid or expired token"})
			return
		}
		var req struct {
			AccessToken  string `json:"accessToken"`
			RefreshToken string `json:"refreshToken"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.RefreshToken)
		json.NewEncoder(w).Encode(b.newPair())
	})
	mux.HandleFunc("/admin/me", func(w http.ResponseWriter, r *http.Request) {
		b.lastAuth.Store(r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]string{"email": "staff@example.com"})
	})
	b.server = httptest.NewServer(mux)
	t.Cleanup(b.server.Close)
	return b
}

func (b *backend) get(t *testing.T, guard *Guard) *http.Response {
	t.Helper()
	client := &http.Client{Transport: guard}
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, b.server.URL+"/admin/me", nil)
	require.NoError(t, err)
	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	return resp
}

func TestGuard_ValidTokenPassesThrough(t *testing.T) {
	b := newBackend(t)
	token := makeToken(t, time.Now().Add(10*time.Minute))

	store := NewMemorySessionStore()
	require.NoError(t, store.Save(&Session{TokenPair: models.TokenPair{
		AccessToken:  token,
		RefreshToken: "refresh-1",
	}}))

	guard := NewGuard(nil, store, b.server.URL+"/auths/staff/refresh-token", nil)
	b.get(t, guard)

	assert.Equal(t, "Bearer "+token, b.lastAuth.Load())
	assert.EqualValues(t, 0, b.refreshCount.Load())
}

func TestGuard_NoSessionPassesUnauthenticated(t *testing.T) {
	b := newBackend(t)
	guard := NewGuard(nil, NewMemorySessionStore(), b.server.URL+"/auths/staff/refresh-token", nil)

	b.get(t, guard)

	assert.Equal(t, "", b.lastAuth.Load())
	assert.EqualValues(t, 0, b.refreshCount.Load())
}

func TestGuard_RefreshesExpiringToken(t *testing.T) {
	b := newBackend(t)
	oldToken := makeToken(t, time.Now().Add(10*time.Second))
	newToken := makeToken(t, time.Now().Add(30*time.Minute))
	b.newPair = func() models.TokenPair {
		return models.TokenPair{AccessToken: newToken, RefreshToken: "refresh-2"}
	}

	store := NewMemorySessionStore()
	require.NoError(t, store.Save(&Session{TokenPair: models.TokenPair{
		AccessToken:  oldToken,
		RefreshToken: "refresh-1",
	}}))

	guard := NewGuard(nil, store, b.server.URL+"/auths/staff/refresh-token", nil)
	b.get(t, guard)

	assert.Equal(t, "Bearer "+newToken, b.lastAuth.Load())
	assert.EqualValues(t, 1, b.refreshCount.Load())

	// Rotation persisted: the next request uses the new pair, no refresh.
	b.get(t, guard)
	assert.EqualValues(t, 1, b.refreshCount.Load())

	session, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "refresh-2", session.RefreshToken)
}

func TestGuard_ExpiredTokenEndsSessionWithoutRefresh(t *testing.T) {
	b := newBackend(t)

	store := NewMemorySessionStore()
	require.NoError(t, store.Save(&Session{TokenPair: models.TokenPair{
		AccessToken:  makeToken(t, time.Now().Add(-time.Minute)),
		RefreshToken: "refresh-1",
	}}))

	var loggedOut bool
	guard := NewGuard(nil, store, b.server.URL+"/auths/staff/refresh-token", func() {
		loggedOut = true
	})

	client := &http.Client{Transport: guard}
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, b.server.URL+"/admin/me", nil)
	require.NoError(t, err)

	_, err = client.Do(req)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.True(t, loggedOut)
	assert.EqualValues(t, 0, b.refreshCount.Load())

	session, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestGuard_FailedRefreshClearsSession(t *testing.T) {
	b := newBackend(t)
	b.refreshFails = true

	store := NewMemorySessionStore()
	require.NoError(t, store.Save(&Session{TokenPair: models.TokenPair{
		AccessToken:  makeToken(t, time.Now().Add(10*time.Second)),
		RefreshToken: "refresh-1",
	}}))

	var loggedOut bool
	guard := NewGuard(nil, store, b.server.URL+"/auths/staff/refresh-token", func() {
		loggedOut = true
	})

	client := &http.Client{Transport: guard}
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, b.server.URL+"/admin/me", nil)
	require.NoError(t, err)

	_, err = client.Do(req)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.True(t, loggedOut)

	session, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, session)

	// Only one refresh was attempted for the failed session.
	assert.EqualValues(t, 1, b.refreshCount.Load())
}

func TestGuard_MalformedTokenEndsSession(t *testing.T) {
	b := newBackend(t)

	// The exp claim cannot be read from an opaque token; the stored
	// expiration is informational and must not keep the session alive.
	store := NewMemorySessionStore()
	require.NoError(t, store.Save(&Session{TokenPair: models.TokenPair{
		AccessToken:           "not-a-jwt",
		RefreshToken:          "refresh-1",
		AccessTokenExpiration: time.Now().Add(10 * time.Minute),
	}}))

	var loggedOut bool
	guard := NewGuard(nil, store, b.server.URL+"/auths/staff/refresh-token", func() {
		loggedOut = true
	})

	client := &http.Client{Transport: guard}
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, b.server.URL+"/admin/me", nil)
	require.NoError(t, err)

	_, err = client.Do(req)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.True(t, loggedOut)
	assert.EqualValues(t, 0, b.refreshCount.Load())

	// The malformed token was never sent and the session is gone.
	assert.Nil(t, b.lastAuth.Load())
	session, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, session)
}
