package handlers

import (
	"net/http"
	"strconv"

	"truongphat/internal/service"
)

// AuthHandler handles staff authentication endpoints.
type AuthHandler struct {
	authService  *service.AuthService
	staffService *service.StaffService
	emailService *service.EmailService
	googleOAuth  googleOAuthConfig
	baseURL      string
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService *service.AuthService, staffService *service.StaffService, emailService *service.EmailService, googleClientID, googleClientSecret, baseURL string) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		staffService: staffService,
		emailService: emailService,
		googleOAuth: googleOAuthConfig{
			ClientID:     googleClientID,
			ClientSecret: googleClientSecret,
		},
		baseURL: baseURL,
	}
}

// Login authenticates with email and password and returns the staff profile
// plus a token pair.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Refresh exchanges a refresh token for a new token pair. The access token
// accompanies the request so the rotation can be tied to its owner; it is
// accepted even when already expired.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.RefreshToken == "" {
		respondError(w, http.StatusBadRequest, "refreshToken is required")
		return
	}

	pair, err := h.authService.Refresh(req.AccessToken, req.RefreshToken)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pair)
}

// Logout revokes the presented refresh token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.authService.Logout(req.RefreshToken); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// ForgotPassword sends a reset link. The response is the same whether or
// not the email exists.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.authService.RequestPasswordReset(r.Context(), h.emailService, req.Email); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "if the email exists, a reset link has been sent",
	})
}

// ResetPassword sets a new password using a token from the reset email.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.authService.ResetPassword(req.Token, req.Password); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}

// Me returns the authenticated staff member's profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid token subject")
		return
	}

	staff, err := h.staffService.GetStaff(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, staff)
}
