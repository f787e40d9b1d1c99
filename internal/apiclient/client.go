package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"truongphat/internal/models"
	"truongphat/internal/service"
)

// Client is the admin API client used by the CLI. All authenticated calls
// go through the session guard, which keeps the access token fresh.
type Client struct {
	baseURL    string
	store      SessionStore
	httpClient *http.Client
}

// NewClient creates a client for the API at baseURL, persisting the staff
// session in store.
func NewClient(baseURL string, store SessionStore, onLogout func()) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	guard := NewGuard(nil, store, baseURL+"/auths/staff/refresh-token", onLogout)
	return &Client{
		baseURL: baseURL,
		store:   store,
		httpClient: &http.Client{
			Transport: guard,
			Timeout:   30 * time.Second,
		},
	}
}

// Login authenticates with email and password and persists the session.
func (c *Client) Login(ctx context.Context, email, password string) (*models.LoginResult, error) {
	// A login replaces whatever session is stored; drop it first so the
	// guard does not act on stale credentials during the login call itself.
	if err := c.store.Clear(); err != nil {
		return nil, err
	}

	result := &models.LoginResult{}
	err := c.do(ctx, http.MethodPost, "/auths/staff/login", map[string]string{
		"email":    email,
		"password": password,
	}, result)
	if err != nil {
		return nil, err
	}

	session := &Session{TokenPair: result.TokenPair, Staff: result.Staff}
	if err := c.store.Save(session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return result, nil
}

// Logout revokes the refresh token on the server and clears the session.
func (c *Client) Logout(ctx context.Context) error {
	session, err := c.store.Load()
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}

	// Best effort: the local session is cleared even when the server call
	// fails, otherwise a dead server would pin the user logged in.
	err = c.do(ctx, http.MethodPost, "/auths/staff/logout", map[string]string{
		"refreshToken": session.RefreshToken,
	}, nil)
	if errors.Is(err, ErrSessionExpired) {
		// The guard already ended the session, which is what logout wanted.
		err = nil
	}
	if clearErr := c.store.Clear(); clearErr != nil {
		return clearErr
	}
	return err
}

// Me returns the authenticated staff profile.
func (c *Client) Me(ctx context.Context) (*models.Staff, error) {
	staff := &models.Staff{}
	if err := c.do(ctx, http.MethodGet, "/admin/me", nil, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// DashboardStats returns the back-office overview.
func (c *Client) DashboardStats(ctx context.Context) (*service.DashboardStats, error) {
	stats := &service.DashboardStats{}
	if err := c.do(ctx, http.MethodGet, "/admin/stats", nil, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// ListContacts returns a page of contact submissions.
func (c *Client) ListContacts(ctx context.Context, status string, page models.Page) (*models.List[models.Contact], error) {
	path := fmt.Sprintf("/admin/contacts?page=%d&size=%d", page.Number, page.Size)
	if status != "" {
		path += "&status=" + status
	}

	list := &models.List[models.Contact]{}
	if err := c.do(ctx, http.MethodGet, path, nil, list); err != nil {
		return nil, err
	}
	return list, nil
}

// MarkContact updates a submission's status.
func (c *Client) MarkContact(ctx context.Context, id int64, status string) error {
	path := fmt.Sprintf("/admin/contacts/%d/status", id)
	return c.do(ctx, http.MethodPut, path, map[string]string{"status": status}, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, dst interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Message != "" {
			return fmt.Errorf("%s (%d)", apiErr.Message, resp.StatusCode)
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	if dst == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
