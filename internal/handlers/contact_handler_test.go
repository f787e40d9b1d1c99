package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"truongphat/internal/kvstore"
	"truongphat/internal/ratelimit"
	"truongphat/internal/service"
)

func testContactHandler(gate *ratelimit.Gate) *ContactHandler {
	return NewContactHandler(service.NewContactService(nil, gate, nil))
}

func TestContactStatus_FreshClient(t *testing.T) {
	gate := ratelimit.NewGate(kvstore.NewMemoryStore(), 5, 24*time.Hour)
	h := testContactHandler(gate)

	req := httptest.NewRequest(http.MethodGet, "/contacts/status", nil)
	req.RemoteAddr = "10.0.0.1:50000"

	rec := httptest.NewRecorder()
	h.Status(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var status submissionStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.True(t, status.Allowed)
	assert.Equal(t, 5, status.Remaining)
	assert.False(t, status.IsLimited)
	assert.Nil(t, status.ResetTime)
}

func TestContactSubmit_Limited(t *testing.T) {
	gate := ratelimit.NewGate(kvstore.NewMemoryStore(), 5, 24*time.Hour)
	h := testContactHandler(gate)

	// Exhaust the quota for this client.
	for i := 0; i < 5; i++ {
		gate.RecordSubmission(context.Background(), "10.0.0.1")
	}

	body := `{"fullName":"Nguyễn Văn An","email":"an@example.com","phone":"0901234567","message":"Tư vấn thiết kế"}`
	req := httptest.NewRequest(http.MethodPost, "/contacts", strings.NewReader(body))
	req.RemoteAddr = "10.0.0.1:50000"

	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	var apiErr APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Contains(t, apiErr.Message, "Bạn đã gửi quá nhiều yêu cầu")
	assert.Contains(t, apiErr.Message, "phút")
}

func TestContactSubmit_InvalidEmail(t *testing.T) {
	gate := ratelimit.NewGate(kvstore.NewMemoryStore(), 5, 24*time.Hour)
	h := testContactHandler(gate)

	body := `{"fullName":"Nguyễn Văn An","email":"not-an-email","message":"Tư vấn"}`
	req := httptest.NewRequest(http.MethodPost, "/contacts", strings.NewReader(body))
	req.RemoteAddr = "10.0.0.1:50000"

	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var apiErr APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Contains(t, apiErr.Fields, "email")
}
