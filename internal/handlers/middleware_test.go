package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"truongphat/internal/config"
	"truongphat/internal/security"
	"truongphat/internal/service"
)

const testSecret = "test-secret"

func testMiddleware() *Middleware {
	authService := service.NewAuthService(nil, nil, config.AuthConfig{
		JWTSecret:      testSecret,
		AccessTokenTTL: 30 * time.Minute,
	})
	return NewMiddleware(authService, security.NewRateLimiter(100, time.Minute))
}

func signToken(t *testing.T, role string, expiresIn time.Duration) string {
	t.Helper()
	claims := service.AccessClaims{
		Email: "staff@example.com",
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func TestRequireAuth_MissingToken(t *testing.T) {
	m := testMiddleware()
	handler := m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	m := testMiddleware()
	handler := m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "admin", -time.Minute))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_ValidToken(t *testing.T) {
	m := testMiddleware()

	var called bool
	handler := m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		claims := ClaimsFromContext(r.Context())
		require.NotNil(t, claims)
		assert.Equal(t, "1", claims.Subject)
		assert.Equal(t, "admin", claims.Role)
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "admin", time.Minute))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdmin_RejectsEditor(t *testing.T) {
	m := testMiddleware()
	handler := m.RequireAuth(m.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	})))

	req := httptest.NewRequest(http.MethodDelete, "/admin/staffs/2", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "editor", time.Minute))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestThrottleLogin(t *testing.T) {
	authService := service.NewAuthService(nil, nil, config.AuthConfig{JWTSecret: testSecret})
	m := NewMiddleware(authService, security.NewRateLimiter(2, time.Minute))

	handler := m.ThrottleLogin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/auths/staff/login", nil)
	req.RemoteAddr = "10.0.0.1:50000"

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
