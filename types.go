package session

import (
	"fmt"
	"time"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// TokenStore is the persistent key-value storage for the access token, the
// refresh token, and the serialized session snapshot. Implementations are
// best-effort: a failed write is swallowed (the session continues in-memory
// only) and a failed read is reported as absence.
type TokenStore interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Remove(key string)
}

// Config holds session options
type Config interface {
	GetBaseURL() string
	GetAuthTimeout() time.Duration
	GetPublicTimeout() time.Duration
	GetStorageNamespace() string
	GetRefreshSkew() time.Duration
}

// SessionState is the derived view of the current session used by UI
// consumers. It is never persisted.
type SessionState struct {
	Authenticated      bool
	SubscriptionActive bool
}

// API endpoint paths, relative to the configured base URL.
const (
	loginPath   = "api/v1/auth/login"
	refreshPath = "api/v1/auth/refresh"
	logoutPath  = "api/v1/auth/logout"
)

// Storage key suffixes; the configured namespace is prefixed to each so
// multiple apps sharing one store do not collide.
const (
	suffixAccessToken  = "access_token"
	suffixRefreshToken = "refresh_token"
	suffixUserContext  = "user_context"
)

func storageKey(namespace, suffix string) string {
	return namespace + "_" + suffix
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] SESSION "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] SESSION "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] SESSION "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] SESSION "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
