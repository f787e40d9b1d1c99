package models

import "time"

// RefreshToken is the stored half of a staff session. Only the SHA-256 hash
// of the opaque token is persisted.
type RefreshToken struct {
	TokenHash string
	StaffID   int64
	ExpiresAt time.Time
	CreatedAt time.Time
	Revoked   bool
}

// IsExpired checks if the refresh token has expired.
func (t *RefreshToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

// TokenPair is the credential set returned by login and refresh. The
// expiration fields are informational for clients; the authoritative access
// token expiry is the exp claim embedded in the token itself.
type TokenPair struct {
	AccessToken            string    `json:"accessToken"`
	RefreshToken           string    `json:"refreshToken"`
	AccessTokenExpiration  time.Time `json:"accessTokenExpiration"`
	RefreshTokenExpiration time.Time `json:"refreshTokenExpiration"`
}

// LoginResult is the full session payload: staff profile plus credentials.
type LoginResult struct {
	Staff
	TokenPair
}
