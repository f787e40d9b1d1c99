package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"truongphat/internal/config"
	"truongphat/internal/models"
	"truongphat/internal/repository"
	"truongphat/internal/security"
	"truongphat/internal/validation"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrStaffNotFound      = errors.New("staff not found")
)

// AccessClaims is the JWT payload carried by staff access tokens.
type AccessClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService handles staff authentication business logic.
type AuthService struct {
	staffRepo *repository.StaffRepository
	tokenRepo *repository.TokenRepository
	cfg       config.AuthConfig
}

// NewAuthService creates a new auth service.
func NewAuthService(staffRepo *repository.StaffRepository, tokenRepo *repository.TokenRepository, cfg config.AuthConfig) *AuthService {
	return &AuthService{
		staffRepo: staffRepo,
		tokenRepo: tokenRepo,
		cfg:       cfg,
	}
}

// Login authenticates a staff member and issues a token pair.
func (s *AuthService) Login(email, password string) (*models.LoginResult, error) {
	staff, err := s.staffRepo.GetStaffByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}
	if staff == nil {
		return nil, ErrInvalidCredentials
	}
	if !security.CheckPassword(password, staff.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !staff.IsActive {
		return nil, ErrAccountDisabled
	}

	pair, err := s.issueTokenPair(staff)
	if err != nil {
		return nil, err
	}
	return &models.LoginResult{Staff: *staff, TokenPair: *pair}, nil
}

// OAuthLogin signs in an existing staff member identified by a verified
// provider email. The back office has no self-signup, so an unknown email is
// rejected rather than provisioned.
func (s *AuthService) OAuthLogin(email string) (*models.LoginResult, error) {
	staff, err := s.staffRepo.GetStaffByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}
	if staff == nil {
		return nil, ErrStaffNotFound
	}
	if !staff.IsActive {
		return nil, ErrAccountDisabled
	}

	pair, err := s.issueTokenPair(staff)
	if err != nil {
		return nil, err
	}
	return &models.LoginResult{Staff: *staff, TokenPair: *pair}, nil
}

// Refresh exchanges a valid refresh token for a fresh token pair. The old
// refresh token is revoked so each one can be redeemed once.
func (s *AuthService) Refresh(accessToken, refreshToken string) (*models.TokenPair, error) {
	stored, err := s.tokenRepo.GetRefreshToken(hashToken(refreshToken))
	if err != nil {
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}
	if stored == nil || stored.Revoked || stored.IsExpired() {
		return nil, ErrInvalidToken
	}

	// The access token may already be expired here; it is only checked for
	// ownership, not validity.
	if claims, err := s.parseUnverified(accessToken); err == nil {
		if claims.Subject != strconv.FormatInt(stored.StaffID, 10) {
			return nil, ErrInvalidToken
		}
	}

	staff, err := s.staffRepo.GetStaffByID(stored.StaffID)
	if err != nil {
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}
	if staff == nil || !staff.IsActive {
		return nil, ErrInvalidToken
	}

	if err := s.tokenRepo.RevokeRefreshToken(stored.TokenHash); err != nil {
		return nil, fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return s.issueTokenPair(staff)
}

// Logout revokes the given refresh token. Unknown tokens are ignored so
// logout is idempotent.
func (s *AuthService) Logout(refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := s.tokenRepo.RevokeRefreshToken(hashToken(refreshToken)); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}
	return nil
}

// VerifyAccessToken validates an access token's signature and expiry and
// returns its claims.
func (s *AuthService) VerifyAccessToken(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// RequestPasswordReset creates a reset token and emails a reset link.
// Unknown emails are silently ignored so the endpoint does not reveal which
// accounts exist.
func (s *AuthService) RequestPasswordReset(ctx context.Context, emailService *EmailService, email string) error {
	staff, err := s.staffRepo.GetStaffByEmail(email)
	if err != nil {
		return fmt.Errorf("failed to get staff: %w", err)
	}
	if staff == nil || !staff.IsActive {
		return nil
	}

	token, err := security.GenerateToken(32)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	_ = s.staffRepo.DeleteStaffPasswordResetTokens(staff.ID)

	expiresAt := time.Now().Add(1 * time.Hour)
	if err := s.staffRepo.CreatePasswordResetToken(token, staff.ID, expiresAt); err != nil {
		return fmt.Errorf("failed to create reset token: %w", err)
	}

	if emailService != nil && emailService.IsEnabled() {
		if err := emailService.SendPasswordResetEmail(ctx, staff.Email, staff.FullName, token); err != nil {
			return fmt.Errorf("failed to send reset email: %w", err)
		}
	}
	return nil
}

// ResetPassword sets a new password using a valid reset token and revokes
// all of the staff member's refresh tokens.
func (s *AuthService) ResetPassword(token, newPassword string) error {
	resetToken, err := s.staffRepo.GetPasswordResetToken(token)
	if err != nil {
		return fmt.Errorf("failed to get reset token: %w", err)
	}
	if resetToken == nil || resetToken.Used || resetToken.IsExpired() {
		return ErrInvalidToken
	}

	if err := validation.ValidatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.staffRepo.UpdatePassword(resetToken.StaffID, passwordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if err := s.staffRepo.MarkPasswordResetTokenUsed(token); err != nil {
		return fmt.Errorf("failed to mark token as used: %w", err)
	}

	// Force re-login everywhere after a password change.
	if err := s.tokenRepo.RevokeStaffRefreshTokens(resetToken.StaffID); err != nil {
		log.Printf("Warning: failed to revoke refresh tokens for staff %d: %v", resetToken.StaffID, err)
	}
	return nil
}

// CleanupExpiredTokens removes expired refresh and password reset tokens.
func (s *AuthService) CleanupExpiredTokens() error {
	if err := s.tokenRepo.DeleteExpiredRefreshTokens(); err != nil {
		return fmt.Errorf("failed to cleanup refresh tokens: %w", err)
	}
	if err := s.staffRepo.DeleteExpiredPasswordResetTokens(); err != nil {
		return fmt.Errorf("failed to cleanup reset tokens: %w", err)
	}
	return nil
}

func (s *AuthService) issueTokenPair(staff *models.Staff) (*models.TokenPair, error) {
	now := time.Now()
	accessExpiry := now.Add(s.cfg.AccessTokenTTL)
	refreshExpiry := now.Add(s.cfg.RefreshTokenTTL)

	claims := AccessClaims{
		Email: staff.Email,
		Role:  staff.RoleName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(staff.ID, 10),
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(accessExpiry),
		},
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshToken, err := security.GenerateToken(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	stored := &models.RefreshToken{
		TokenHash: hashToken(refreshToken),
		StaffID:   staff.ID,
		ExpiresAt: refreshExpiry,
	}
	if err := s.tokenRepo.SaveRefreshToken(stored); err != nil {
		return nil, fmt.Errorf("failed to save refresh token: %w", err)
	}

	return &models.TokenPair{
		AccessToken:            accessToken,
		RefreshToken:           refreshToken,
		AccessTokenExpiration:  accessExpiry,
		RefreshTokenExpiration: refreshExpiry,
	}, nil
}

func (s *AuthService) parseUnverified(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
