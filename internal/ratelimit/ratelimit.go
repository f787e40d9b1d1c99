package ratelimit

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"truongphat/internal/kvstore"
)

// Default contact-form submission policy.
const (
	DefaultMaxSubmissions = 5
	DefaultResetPeriod    = 24 * time.Hour
)

const ledgerKeyPrefix = "contact_submissions:"

// submissionRecord is the ledger entry persisted per client, one JSON blob
// each. Count is advisory and recomputed from Submissions on read.
type submissionRecord struct {
	Count       int       `json:"count"`
	LastReset   time.Time `json:"lastReset"`
	Submissions []string  `json:"submissions"`
}

// Status is the gate decision for one client.
type Status struct {
	Allowed   bool
	Remaining int
	ResetTime *time.Time
	IsLimited bool
}

// Gate decides whether a contact-form submission is allowed for a client,
// using a sliding window over the submission ledger. It is advisory: the
// gate itself never blocks anything, callers act on the returned Status.
type Gate struct {
	store  kvstore.Store
	max    int
	period time.Duration
	now    func() time.Time
}

// NewGate creates a gate over the given ledger store. Non-positive policy
// values fall back to the defaults.
func NewGate(store kvstore.Store, max int, period time.Duration) *Gate {
	if max <= 0 {
		max = DefaultMaxSubmissions
	}
	if period <= 0 {
		period = DefaultResetPeriod
	}
	return &Gate{
		store:  store,
		max:    max,
		period: period,
		now:    time.Now,
	}
}

// CheckStatus reads the ledger for key and returns the current decision.
//
// Any storage read or parse failure fails open: the client is allowed and
// the error is only logged. The gate is a UX nicety, never the authoritative
// enforcement.
func (g *Gate) CheckStatus(ctx context.Context, key string) Status {
	fresh := Status{Allowed: true, Remaining: g.max}

	raw, ok, err := g.store.Get(ctx, ledgerKey(key))
	if err != nil {
		log.Printf("ratelimit: failed to read ledger for %s: %v", key, err)
		return fresh
	}
	if !ok {
		return fresh
	}

	var record submissionRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		log.Printf("ratelimit: malformed ledger for %s: %v", key, err)
		return fresh
	}

	now := g.now()

	// The whole record ages out once the full period has passed since it
	// was created; delete it rather than zeroing it.
	if now.Sub(record.LastReset) >= g.period {
		if err := g.store.Remove(ctx, ledgerKey(key)); err != nil {
			log.Printf("ratelimit: failed to delete expired ledger for %s: %v", key, err)
		}
		return fresh
	}

	recent := g.recentSubmissions(record.Submissions, now)

	remaining := g.max - len(recent)
	if remaining < 0 {
		remaining = 0
	}

	status := Status{
		Allowed:   remaining > 0,
		Remaining: remaining,
		IsLimited: remaining == 0,
	}

	// The window slides: the client regains a slot when the oldest recent
	// submission falls out of it.
	if len(recent) > 0 {
		reset := recent[0].Add(g.period)
		status.ResetTime = &reset
	}

	return status
}

// RecordSubmission appends the current timestamp to the client's ledger and
// persists it. It does not enforce the limit; callers decide via CheckStatus
// whether a submission may proceed. It is also invoked after a server-side
// 429 to keep the ledger in sync with the backend's own enforcement.
func (g *Gate) RecordSubmission(ctx context.Context, key string) {
	now := g.now()

	record := submissionRecord{}
	if raw, ok, err := g.store.Get(ctx, ledgerKey(key)); err != nil {
		log.Printf("ratelimit: failed to read ledger for %s: %v", key, err)
	} else if ok {
		var existing submissionRecord
		if err := json.Unmarshal([]byte(raw), &existing); err != nil {
			log.Printf("ratelimit: malformed ledger for %s: %v", key, err)
		} else {
			record = existing
		}
	}

	var kept []string
	for _, ts := range g.recentSubmissions(record.Submissions, now) {
		kept = append(kept, ts.Format(time.RFC3339Nano))
	}
	record.Submissions = append(kept, now.Format(time.RFC3339Nano))
	record.Count = len(record.Submissions)
	// LastReset tracks the latest write, so a record only ages out after a
	// full quiet period. Entries inside it still expire individually.
	record.LastReset = now

	encoded, err := json.Marshal(record)
	if err != nil {
		log.Printf("ratelimit: failed to encode ledger for %s: %v", key, err)
		return
	}
	if err := g.store.Set(ctx, ledgerKey(key), string(encoded)); err != nil {
		log.Printf("ratelimit: failed to persist ledger for %s: %v", key, err)
	}
}

// recentSubmissions parses the stored timestamps and keeps those still
// inside the window, preserving chronological order. Unparseable entries
// are dropped.
func (g *Gate) recentSubmissions(submissions []string, now time.Time) []time.Time {
	var recent []time.Time
	for _, raw := range submissions {
		ts, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			log.Printf("ratelimit: dropping malformed timestamp %q: %v", raw, err)
			continue
		}
		if now.Sub(ts) < g.period {
			recent = append(recent, ts)
		}
	}
	return recent
}

// FormatResetTime renders the wait until reset as a Vietnamese duration
// string for the contact form, e.g. "2 giờ 15 phút" or "45 phút".
// Returns "" when the status carries no reset time.
func (g *Gate) FormatResetTime(status Status) string {
	if status.ResetTime == nil {
		return ""
	}

	wait := status.ResetTime.Sub(g.now())
	if wait < 0 {
		wait = 0
	}

	hours := int(wait.Hours())
	minutes := int(wait.Minutes()) % 60
	if wait > 0 && hours == 0 && minutes == 0 {
		minutes = 1
	}

	if hours > 0 {
		return fmt.Sprintf("%d giờ %d phút", hours, minutes)
	}
	return fmt.Sprintf("%d phút", minutes)
}

func ledgerKey(key string) string {
	return ledgerKeyPrefix + key
}
