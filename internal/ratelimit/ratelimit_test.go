package ratelimit

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"truongphat/internal/kvstore"
)

type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("storage unavailable")
}

func (failingStore) Set(context.Context, string, string) error {
	return errors.New("storage unavailable")
}

func (failingStore) Remove(context.Context, string) error {
	return errors.New("storage unavailable")
}

func newTestGate(t *testing.T) (*Gate, *kvstore.MemoryStore, *time.Time) {
	t.Helper()

	store := kvstore.NewMemoryStore()
	gate := NewGate(store, 5, 24*time.Hour)

	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	clock := &now
	gate.now = func() time.Time { return *clock }

	return gate, store, clock
}

func TestCheckStatusFreshClient(t *testing.T) {
	gate, _, _ := newTestGate(t)

	status := gate.CheckStatus(context.Background(), "203.0.113.7")

	assert.True(t, status.Allowed)
	assert.Equal(t, 5, status.Remaining)
	assert.Nil(t, status.ResetTime)
	assert.False(t, status.IsLimited)
}

func TestSlidingWindowBoundary(t *testing.T) {
	gate, _, clock := newTestGate(t)
	ctx := context.Background()

	// Five submissions ten minutes apart.
	start := *clock
	for i := 0; i < 5; i++ {
		*clock = start.Add(time.Duration(i) * 10 * time.Minute)
		gate.RecordSubmission(ctx, "client")
	}

	*clock = start.Add(time.Hour)
	status := gate.CheckStatus(ctx, "client")
	assert.False(t, status.Allowed)
	assert.True(t, status.IsLimited)
	assert.Equal(t, 0, status.Remaining)
	require.NotNil(t, status.ResetTime)
	assert.Equal(t, start.Add(24*time.Hour), *status.ResetTime)

	// Once the oldest submission falls out of the window a single slot
	// opens up and the reset time moves to the next oldest entry.
	*clock = start.Add(24*time.Hour + time.Minute)
	status = gate.CheckStatus(ctx, "client")
	assert.True(t, status.Allowed)
	assert.Equal(t, 1, status.Remaining)
	require.NotNil(t, status.ResetTime)
	assert.Equal(t, start.Add(10*time.Minute).Add(24*time.Hour), *status.ResetTime)
}

func TestExpiredRecordDeletedWholesale(t *testing.T) {
	gate, store, clock := newTestGate(t)
	ctx := context.Background()

	record := submissionRecord{
		Count:       5,
		LastReset:   clock.Add(-25 * time.Hour),
		Submissions: []string{clock.Add(-25 * time.Hour).Format(time.RFC3339Nano)},
	}
	encoded, err := json.Marshal(record)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "contact_submissions:client", string(encoded)))

	status := gate.CheckStatus(ctx, "client")
	assert.True(t, status.Allowed)
	assert.Equal(t, 5, status.Remaining)
	assert.Nil(t, status.ResetTime)

	// The record was removed, not merely zeroed.
	_, ok, err := store.Get(ctx, "contact_submissions:client")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRecordSubmissionRoundTrip(t *testing.T) {
	gate, _, _ := newTestGate(t)
	ctx := context.Background()

	before := gate.CheckStatus(ctx, "client")
	gate.RecordSubmission(ctx, "client")
	after := gate.CheckStatus(ctx, "client")

	assert.Equal(t, before.Remaining-1, after.Remaining)
	assert.True(t, after.Allowed)
	require.NotNil(t, after.ResetTime)
}

func TestMalformedLedgerFailsOpen(t *testing.T) {
	gate, store, _ := newTestGate(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "contact_submissions:client", "{not json"))

	status := gate.CheckStatus(ctx, "client")
	assert.True(t, status.Allowed)
	assert.Equal(t, 5, status.Remaining)
}

func TestStorageErrorFailsOpen(t *testing.T) {
	gate := NewGate(failingStore{}, 5, 24*time.Hour)

	status := gate.CheckStatus(context.Background(), "client")
	assert.True(t, status.Allowed)
	assert.Equal(t, 5, status.Remaining)
	assert.False(t, status.IsLimited)
}

func TestFormatResetTime(t *testing.T) {
	gate, _, clock := newTestGate(t)

	tests := []struct {
		name string
		wait time.Duration
		want string
	}{
		{name: "hours and minutes", wait: 2*time.Hour + 15*time.Minute, want: "2 giờ 15 phút"},
		{name: "minutes only", wait: 45 * time.Minute, want: "45 phút"},
		{name: "under a minute rounds up", wait: 20 * time.Second, want: "1 phút"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reset := clock.Add(tt.wait)
			got := gate.FormatResetTime(Status{ResetTime: &reset})
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "", gate.FormatResetTime(Status{}))
}
