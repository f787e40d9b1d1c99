package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"truongphat/internal/config"
)

func testAuthService(secret string) *AuthService {
	return NewAuthService(nil, nil, config.AuthConfig{
		JWTSecret:       secret,
		AccessTokenTTL:  30 * time.Minute,
		RefreshTokenTTL: 720 * time.Hour,
		Issuer:          "truongphat",
	})
}

func signTestToken(t *testing.T, secret string, claims AccessClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestVerifyAccessToken(t *testing.T) {
	s := testAuthService("test-secret")

	claims := AccessClaims{
		Email: "admin@example.com",
		Role:  "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "7",
			Issuer:    "truongphat",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(30 * time.Minute)),
		},
	}

	got, err := s.VerifyAccessToken(signTestToken(t, "test-secret", claims))
	require.NoError(t, err)
	assert.Equal(t, "7", got.Subject)
	assert.Equal(t, "admin@example.com", got.Email)
	assert.Equal(t, "admin", got.Role)
}

func TestVerifyAccessToken_Expired(t *testing.T) {
	s := testAuthService("test-secret")

	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "7",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}

	_, err := s.VerifyAccessToken(signTestToken(t, "test-secret", claims))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyAccessToken_WrongSecret(t *testing.T) {
	s := testAuthService("test-secret")

	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "7",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}

	_, err := s.VerifyAccessToken(signTestToken(t, "other-secret", claims))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyAccessToken_Garbage(t *testing.T) {
	s := testAuthService("test-secret")

	_, err := s.VerifyAccessToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestHashToken(t *testing.T) {
	a := hashToken("token-a")
	b := hashToken("token-b")

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, hashToken("token-a"))
}
