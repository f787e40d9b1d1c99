package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"truongphat/internal/security"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type googleOAuthConfig struct {
	ClientID     string
	ClientSecret string
}

func (c googleOAuthConfig) configured() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// StartGoogleOAuth begins the Google sign-in flow for the back office.
func (h *AuthHandler) StartGoogleOAuth(w http.ResponseWriter, r *http.Request) {
	if !h.googleOAuth.configured() {
		respondError(w, http.StatusNotFound, "Google sign-in is not configured")
		return
	}

	state, err := security.GenerateToken(16)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	h.setTempCookie(w, "oauth_state", state, 10*time.Minute)

	config := h.googleConfig()
	authURL := config.AuthCodeURL(state, oauth2.AccessTypeOnline)
	http.Redirect(w, r, authURL, http.StatusFound)
}

// GoogleOAuthCallback completes the Google sign-in flow. Only existing,
// active staff accounts may sign in; unknown Google accounts are rejected.
func (h *AuthHandler) GoogleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	if !h.googleOAuth.configured() {
		respondError(w, http.StatusNotFound, "Google sign-in is not configured")
		return
	}

	state := r.URL.Query().Get("state")
	code := r.URL.Query().Get("code")
	if code == "" {
		respondError(w, http.StatusBadRequest, "missing authorization code")
		return
	}

	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" || stateCookie.Value != state {
		respondError(w, http.StatusBadRequest, "invalid oauth state")
		return
	}
	h.clearTempCookie(w, "oauth_state")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	config := h.googleConfig()
	token, err := config.Exchange(ctx, code)
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to exchange authorization code")
		return
	}

	email, err := fetchGoogleEmail(ctx, token)
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to fetch Google account info")
		return
	}

	result, err := h.authService.OAuthLogin(email)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *AuthHandler) googleConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.googleOAuth.ClientID,
		ClientSecret: h.googleOAuth.ClientSecret,
		RedirectURL:  fmt.Sprintf("%s/auths/staff/google/callback", strings.TrimRight(h.baseURL, "/")),
		Scopes:       []string{"openid", "email"},
		Endpoint:     google.Endpoint,
	}
}

func fetchGoogleEmail(ctx context.Context, token *oauth2.Token) (string, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("userinfo request returned %d", resp.StatusCode)
	}

	var payload struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	if payload.Email == "" {
		return "", fmt.Errorf("Google account has no email")
	}
	return payload.Email, nil
}

func (h *AuthHandler) setTempCookie(w http.ResponseWriter, name, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(ttl),
		MaxAge:   int(ttl.Seconds()),
	})
}

func (h *AuthHandler) clearTempCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
