package repository

import (
	"database/sql"
	"fmt"
	"time"

	"truongphat/internal/database"
	"truongphat/internal/models"
)

// TokenRepository handles database operations for refresh tokens.
type TokenRepository struct {
	db *database.DB
}

// NewTokenRepository creates a new token repository.
func NewTokenRepository(db *database.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// SaveRefreshToken stores a hashed refresh token.
func (r *TokenRepository) SaveRefreshToken(token *models.RefreshToken) error {
	query := `
		INSERT INTO refresh_tokens (token_hash, staff_id, expires_at, revoked)
		VALUES (?, ?, ?, ?)
	`
	_, err := r.db.Exec(query, token.TokenHash, token.StaffID, token.ExpiresAt, token.Revoked)
	if err != nil {
		return fmt.Errorf("failed to save refresh token: %w", err)
	}
	return nil
}

// GetRefreshToken retrieves a refresh token by its hash.
func (r *TokenRepository) GetRefreshToken(tokenHash string) (*models.RefreshToken, error) {
	query := `
		SELECT token_hash, staff_id, expires_at, created_at, revoked
		FROM refresh_tokens
		WHERE token_hash = ?
	`
	token := &models.RefreshToken{}
	err := r.db.QueryRow(query, tokenHash).Scan(
		&token.TokenHash,
		&token.StaffID,
		&token.ExpiresAt,
		&token.CreatedAt,
		&token.Revoked,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}
	return token, nil
}

// RevokeRefreshToken marks a refresh token as revoked.
func (r *TokenRepository) RevokeRefreshToken(tokenHash string) error {
	query := "UPDATE refresh_tokens SET revoked = ? WHERE token_hash = ?"
	if _, err := r.db.Exec(query, true, tokenHash); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// RevokeStaffRefreshTokens revokes every refresh token of a staff account,
// forcing re-login on all devices.
func (r *TokenRepository) RevokeStaffRefreshTokens(staffID int64) error {
	query := "UPDATE refresh_tokens SET revoked = ? WHERE staff_id = ?"
	if _, err := r.db.Exec(query, true, staffID); err != nil {
		return fmt.Errorf("failed to revoke staff tokens: %w", err)
	}
	return nil
}

// DeleteExpiredRefreshTokens removes refresh tokens past their expiry.
func (r *TokenRepository) DeleteExpiredRefreshTokens() error {
	_, err := r.db.Exec("DELETE FROM refresh_tokens WHERE expires_at < ?", time.Now())
	if err != nil {
		return fmt.Errorf("failed to delete expired tokens: %w", err)
	}
	return nil
}
