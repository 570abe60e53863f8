package session_test

import (
	"testing"
	"time"

	"github.com/goliatone/go-session"
	"github.com/stretchr/testify/assert"
)

func TestSubscriptionStatusOperational(t *testing.T) {
	operational := []session.SubscriptionStatus{
		session.SubscriptionActive,
		session.SubscriptionTrial,
		session.SubscriptionGrace,
	}
	for _, status := range operational {
		assert.True(t, status.Operational(), "%s should be operational", status)
	}

	blocked := []session.SubscriptionStatus{
		session.SubscriptionSuspended,
		session.SubscriptionExpired,
		session.SubscriptionCancelled,
		session.SubscriptionStatus("unknown"),
		session.SubscriptionStatus(""),
	}
	for _, status := range blocked {
		assert.False(t, status.Operational(), "%s should not be operational", status)
	}
}

func TestSnapshotExpiresWithin(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	skew := 30 * time.Second

	tests := []struct {
		name   string
		expiry time.Time
		stale  bool
	}{
		{"well in the future", now.Add(10 * time.Minute), false},
		{"just outside the skew", now.Add(31 * time.Second), false},
		{"inside the skew", now.Add(15 * time.Second), true},
		{"already past", now.Add(-time.Minute), true},
		{"zero expiry treated as stale", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := testSnapshot("tok", "ref", tt.expiry)
			assert.Equal(t, tt.stale, snap.ExpiresWithin(now, skew))
		})
	}
}

func TestSnapshotTokens(t *testing.T) {
	snap := testSnapshot("tok-1", "ref-1", time.Now().UTC())
	pair := snap.Tokens()
	assert.Equal(t, "tok-1", pair.AccessToken)
	assert.Equal(t, "ref-1", pair.RefreshToken)
}

func TestSnapshotStringRedactsTokens(t *testing.T) {
	snap := testSnapshot("super-secret-access", "super-secret-refresh", time.Now().UTC())
	out := snap.String()

	assert.NotContains(t, out, "super-secret-access")
	assert.NotContains(t, out, "super-secret-refresh")
	assert.Contains(t, out, "role=admin")
}
