package session

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"golang.org/x/sync/singleflight"
)

// Manager orchestrates the session lifecycle: login, silent refresh,
// restore-on-startup, and logout. It is the only writer to the TokenStore,
// StateStore, and PermissionCache; token pair and snapshot are persisted
// and cleared as one unit.
//
// Manager talks to the backend over the public channel (short timeout) so
// auth operations fail fast; authenticated application traffic goes through
// Client/Transport instead.
type Manager struct {
	cfg        Config
	store      TokenStore
	state      *StateStore
	permission *PermissionCache
	httpClient *http.Client
	logger     Logger
	sink       ActivitySink
	now        func() time.Time

	flight singleflight.Group

	mu    sync.Mutex
	phase Phase
}

// NewManager returns a Manager backed by an in-memory token store. Use the
// With* builders to swap in persistence, logging, or telemetry.
func NewManager(cfg Config) *Manager {
	return &Manager{
		cfg:        cfg,
		store:      NewMemoryTokenStore(),
		state:      NewStateStore(),
		permission: NewPermissionCache(),
		httpClient: &http.Client{Timeout: cfg.GetPublicTimeout()},
		logger:     defLogger{},
		sink:       noopActivitySink{},
		now:        time.Now,
		phase:      PhaseAnonymous,
	}
}

func (m *Manager) WithLogger(logger Logger) *Manager {
	if logger != nil {
		m.logger = logger
	}
	return m
}

func (m *Manager) WithTokenStore(store TokenStore) *Manager {
	if store != nil {
		m.store = store
	}
	return m
}

func (m *Manager) WithHTTPClient(client *http.Client) *Manager {
	if client != nil {
		m.httpClient = client
	}
	return m
}

func (m *Manager) WithActivitySink(sink ActivitySink) *Manager {
	m.sink = normalizeActivitySink(sink)
	return m
}

// WithClock injects a custom clock (useful for tests).
func (m *Manager) WithClock(now func() time.Time) *Manager {
	if now != nil {
		m.now = now
	}
	return m
}

// StateStore exposes the observable session state for UI consumers.
func (m *Manager) StateStore() *StateStore {
	return m.state
}

// Permissions exposes the UI-gating permission cache.
func (m *Manager) Permissions() *PermissionCache {
	return m.permission
}

// Phase returns the current lifecycle phase.
func (m *Manager) Phase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

// State returns the derived session view.
func (m *Manager) State() SessionState {
	return m.state.State()
}

// AccessToken returns the persisted access token, or "" when anonymous.
func (m *Manager) AccessToken() string {
	token, _ := m.store.Get(m.key(suffixAccessToken))
	return token
}

// Login authenticates against POST /api/v1/auth/login. On success it
// persists the token pair and snapshot, loads permissions, updates the
// state store, and moves to Authenticated. Valid only from the Anonymous
// and Expired phases.
//
// Expected failures come back as categorized errors carrying the
// server-supplied message when one is available; Login never panics.
func (m *Manager) Login(ctx context.Context, creds Credentials) error {
	if err := creds.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid login request")
	}

	m.mu.Lock()
	if m.phase != PhaseAnonymous && m.phase != PhaseExpired {
		from := m.phase
		m.mu.Unlock()
		return invalidTransitionError(from, PhaseAuthenticating)
	}
	m.phase = PhaseAuthenticating
	m.mu.Unlock()

	snap, err := m.doLogin(ctx, creds)
	if err != nil {
		m.forcePhase(PhaseAnonymous)
		m.emit(ctx, ActivityEventLoginFailure, nil, map[string]any{
			"username": creds.Username,
			"error":    err.Error(),
		})
		return err
	}

	m.persistSession(snap)
	m.forcePhase(PhaseAuthenticated)
	m.emit(ctx, ActivityEventLoginSuccess, snap, nil)

	return nil
}

func (m *Manager) doLogin(ctx context.Context, creds Credentials) (*SessionSnapshot, error) {
	status, body, err := m.postJSON(ctx, loginPath, creds, "")
	if err != nil {
		return nil, err
	}

	// 401/403: invalid credentials or suspended tenant
	if status < 200 || status >= 300 {
		return nil, invalidCredentialsError(envelopeMessage(body))
	}

	snap, err := decodeEnvelope[SessionSnapshot](body)
	if err != nil {
		return nil, err
	}

	snap.normalize()
	return &snap, nil
}

// Refresh renews the access token using the persisted refresh token. It is
// single-flight: concurrent callers attach to the one in-flight operation
// and share its outcome, so N racing 401s produce exactly one network call.
// Any failure clears the whole session before returning.
func (m *Manager) Refresh(ctx context.Context) (string, error) {
	token, err, _ := m.flight.Do("refresh", func() (any, error) {
		return m.doRefresh(ctx)
	})
	if err != nil {
		return "", err
	}
	return token.(string), nil
}

func (m *Manager) doRefresh(ctx context.Context) (string, error) {
	refreshToken, ok := m.store.Get(m.key(suffixRefreshToken))
	if !ok || refreshToken == "" {
		m.clearSession()
		m.forcePhase(PhaseAnonymous)
		return "", ErrRefreshTokenMissing
	}

	if err := m.transition(PhaseRefreshing); err != nil {
		// a refresh racing a logout lands here; nothing to renew
		return "", err
	}

	status, body, err := m.postJSON(ctx, refreshPath, refreshRequest{RefreshToken: refreshToken}, "")
	if err == nil && (status < 200 || status >= 300) {
		err = serverError(envelopeMessage(body))
	}

	var snap SessionSnapshot
	if err == nil {
		snap, err = decodeEnvelope[SessionSnapshot](body)
	}

	if err != nil {
		m.clearSession()
		m.forcePhase(PhaseExpired)
		m.emit(ctx, ActivityEventRefreshFailure, nil, map[string]any{"error": err.Error()})
		return "", goerrors.Wrap(err, goerrors.CategoryAuth, "session expired").
			WithTextCode(textCodeSessionExpired).
			WithCode(goerrors.CodeUnauthorized)
	}

	snap.normalize()
	m.persistSession(&snap)
	m.forcePhase(PhaseAuthenticated)
	m.emit(ctx, ActivityEventRefreshSuccess, &snap, nil)

	return snap.AccessToken, nil
}

// RestoreSession rebuilds the in-memory session from persisted state at
// startup. A snapshot expiring more than the configured skew in the future
// restores without any network call; a stale one triggers a silent refresh.
// Reports whether a session is active afterwards.
func (m *Manager) RestoreSession(ctx context.Context) bool {
	raw, ok := m.store.Get(m.key(suffixUserContext))
	if !ok || raw == "" {
		return false
	}

	var snap SessionSnapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		m.logger.Warn("persisted session unreadable, clearing: %v", err)
		m.clearSession()
		m.forcePhase(PhaseAnonymous)
		return false
	}

	snap.normalize()

	if !snap.ExpiresWithin(m.now(), m.cfg.GetRefreshSkew()) {
		m.state.Set(&snap)
		m.permission.Load(snap.Permissions)
		m.forcePhase(PhaseAuthenticated)
		m.emit(ctx, ActivityEventRestored, &snap, nil)
		return true
	}

	if _, err := m.Refresh(ctx); err != nil {
		m.clearSession()
		m.forcePhase(PhaseAnonymous)
		return false
	}

	return true
}

// Logout revokes the session server-side on a best-effort basis and always
// clears local state. From the caller's perspective it cannot fail.
func (m *Manager) Logout(ctx context.Context) {
	if token := m.AccessToken(); token != "" {
		if _, _, err := m.postJSON(ctx, logoutPath, nil, token); err != nil {
			m.logger.Debug("logout revoke failed, clearing locally: %v", err)
		}
	}

	snap := m.state.Current()
	m.clearSession()
	m.forcePhase(PhaseAnonymous)
	m.emit(ctx, ActivityEventLogout, snap, nil)
}

// persistSession writes tokens and snapshot as one logical unit, then
// refreshes the observable state and the permission cache.
func (m *Manager) persistSession(snap *SessionSnapshot) {
	m.store.Set(m.key(suffixAccessToken), snap.AccessToken)
	m.store.Set(m.key(suffixRefreshToken), snap.RefreshToken)

	if data, err := json.Marshal(snap); err == nil {
		m.store.Set(m.key(suffixUserContext), string(data))
	} else {
		m.logger.Error("failed to serialize session snapshot: %v", err)
	}

	m.state.Set(snap)
	m.permission.Load(snap.Permissions)
}

// clearSession removes all three persisted keys and resets in-memory state
// before returning.
func (m *Manager) clearSession() {
	m.store.Remove(m.key(suffixAccessToken))
	m.store.Remove(m.key(suffixRefreshToken))
	m.store.Remove(m.key(suffixUserContext))
	m.state.Clear()
	m.permission.Clear()
}

func (m *Manager) postJSON(ctx context.Context, path string, payload any, bearer string) (int, []byte, error) {
	endpoint, err := url.JoinPath(m.cfg.GetBaseURL(), path)
	if err != nil {
		return 0, nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid base URL")
	}

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to encode request")
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, reqBody)
	if err != nil {
		return 0, nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to build request")
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	res, err := m.httpClient.Do(req)
	if err != nil {
		return 0, nil, connectivityError(err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return 0, nil, connectivityError(err)
	}

	return res.StatusCode, body, nil
}

func (m *Manager) transition(to Phase) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase == to {
		return nil
	}
	if !canTransition(m.phase, to) {
		return invalidTransitionError(m.phase, to)
	}

	m.logger.Debug("session phase %s -> %s", m.phase, to)
	m.phase = to
	return nil
}

func (m *Manager) forcePhase(to Phase) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != to {
		m.logger.Debug("session phase %s -> %s", m.phase, to)
		m.phase = to
	}
}

func (m *Manager) key(suffix string) string {
	return storageKey(m.cfg.GetStorageNamespace(), suffix)
}

func (m *Manager) emit(ctx context.Context, eventType ActivityEventType, snap *SessionSnapshot, metadata map[string]any) {
	event := ActivityEvent{
		EventType:  eventType,
		Metadata:   metadata,
		OccurredAt: m.now(),
	}
	if snap != nil {
		event.UserID = snap.UserID
		event.TenantID = snap.TenantID
	}

	if err := m.sink.Record(ctx, event); err != nil {
		m.logger.Warn("activity sink record error: %v", err)
	}
}
