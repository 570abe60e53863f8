package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SubscriptionStatus is the tenant billing/plan state as reported by the
// backend. Advisory only: it controls client-side messaging, never access.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "Active"
	SubscriptionTrial     SubscriptionStatus = "Trial"
	SubscriptionGrace     SubscriptionStatus = "Grace"
	SubscriptionSuspended SubscriptionStatus = "Suspended"
	SubscriptionExpired   SubscriptionStatus = "Expired"
	SubscriptionCancelled SubscriptionStatus = "Cancelled"
)

// Operational reports whether the subscription permits full operation.
// Grace still operates, with an upcoming-expiry warning in the UI.
func (s SubscriptionStatus) Operational() bool {
	return s == SubscriptionActive || s == SubscriptionTrial || s == SubscriptionGrace
}

// TokenPair holds the opaque token material issued by the backend. Owned
// exclusively by Manager; written and cleared together with the snapshot.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// SessionSnapshot is the full restorable session state. It is wire-identical
// to the login/refresh success payload and is persisted as a single blob so
// a reload can restore the session without a network round trip.
type SessionSnapshot struct {
	AccessToken        string             `json:"accessToken"`
	RefreshToken       string             `json:"refreshToken"`
	AccessTokenExpiry  time.Time          `json:"accessTokenExpiry"`
	UserID             int64              `json:"userId"`
	TenantID           int64              `json:"tenantId"`
	UserName           string             `json:"userName"`
	RoleCode           string             `json:"roleCode"`
	RoleName           string             `json:"roleName"`
	MustChangePassword bool               `json:"mustChangePassword"`
	SubscriptionStatus SubscriptionStatus `json:"subscriptionStatus"`
	Permissions        map[string]bool    `json:"permissions"`
}

// Tokens returns the token material carried by the snapshot.
func (s *SessionSnapshot) Tokens() TokenPair {
	return TokenPair{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		ExpiresAt:    s.AccessTokenExpiry,
	}
}

// ExpiresWithin reports whether the access token expires before now+skew.
// Expiry comparison is always in UTC.
func (s *SessionSnapshot) ExpiresWithin(now time.Time, skew time.Duration) bool {
	return !s.AccessTokenExpiry.After(now.UTC().Add(skew))
}

// normalize pins the expiry to UTC. When the payload omitted the expiry it
// falls back to the unverified `exp` claim of the access token; the client
// never validates signatures, that is the server's job.
func (s *SessionSnapshot) normalize() {
	if !s.AccessTokenExpiry.IsZero() {
		s.AccessTokenExpiry = s.AccessTokenExpiry.UTC()
		return
	}

	if exp, ok := unverifiedExpiry(s.AccessToken); ok {
		s.AccessTokenExpiry = exp
	}
}

func (s SessionSnapshot) String() string {
	return fmt.Sprintf(
		"user=%d tenant=%d role=%s subscription=%s perms=%d",
		s.UserID,
		s.TenantID,
		s.RoleCode,
		s.SubscriptionStatus,
		len(s.Permissions),
	)
}

func unverifiedExpiry(accessToken string) (time.Time, bool) {
	if accessToken == "" {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}

	return exp.Time.UTC(), true
}

// refreshRequest is the payload sent to the refresh endpoint.
type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}
