package session

import "sync"

// StateStore is the in-memory, observable holder of the current session
// snapshot. Set and Clear notify every subscriber synchronously, in
// registration order, on the goroutine that performed the mutation.
// Subscribers must not assume any ordering relative to subscribers
// registered after them.
//
// Only Manager mutates the store; UI-facing callers read and subscribe.
type StateStore struct {
	mu          sync.RWMutex
	current     *SessionSnapshot
	subscribers []stateSubscriber
	nextID      int
}

type stateSubscriber struct {
	id int
	fn func(*SessionSnapshot)
}

func NewStateStore() *StateStore {
	return &StateStore{}
}

// Subscribe registers a listener invoked on every Set/Clear. The returned
// function unsubscribes it.
func (s *StateStore) Subscribe(fn func(*SessionSnapshot)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subscribers = append(s.subscribers, stateSubscriber{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

// Set replaces the current snapshot after a successful login, refresh, or
// restore.
func (s *StateStore) Set(snap *SessionSnapshot) {
	s.mu.Lock()
	s.current = snap
	listeners := s.listeners()
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}

// Clear drops the snapshot on logout or session expiry.
func (s *StateStore) Clear() {
	s.mu.Lock()
	s.current = nil
	listeners := s.listeners()
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(nil)
	}
}

// Current returns the active snapshot, or nil when anonymous. Callers must
// treat the snapshot as read-only.
func (s *StateStore) Current() *SessionSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Authenticated reports whether a session snapshot is present.
func (s *StateStore) Authenticated() bool {
	return s.Current() != nil
}

// SubscriptionActive reports whether the tenant subscription permits full
// operation (Active, Trial, or Grace).
func (s *StateStore) SubscriptionActive() bool {
	if snap := s.Current(); snap != nil {
		return snap.SubscriptionStatus.Operational()
	}
	return false
}

// State returns the derived session view used by UI consumers.
func (s *StateStore) State() SessionState {
	snap := s.Current()
	if snap == nil {
		return SessionState{}
	}
	return SessionState{
		Authenticated:      true,
		SubscriptionActive: snap.SubscriptionStatus.Operational(),
	}
}

func (s *StateStore) UserName() string {
	if snap := s.Current(); snap != nil {
		return snap.UserName
	}
	return ""
}

func (s *StateStore) RoleCode() string {
	if snap := s.Current(); snap != nil {
		return snap.RoleCode
	}
	return ""
}

func (s *StateStore) RoleName() string {
	if snap := s.Current(); snap != nil {
		return snap.RoleName
	}
	return ""
}

func (s *StateStore) TenantID() int64 {
	if snap := s.Current(); snap != nil {
		return snap.TenantID
	}
	return 0
}

func (s *StateStore) SubscriptionStatus() SubscriptionStatus {
	if snap := s.Current(); snap != nil {
		return snap.SubscriptionStatus
	}
	return ""
}

// listeners must be called with the lock held; the returned slice is safe to
// invoke after release so subscriber callbacks can re-enter the store.
func (s *StateStore) listeners() []func(*SessionSnapshot) {
	out := make([]func(*SessionSnapshot), 0, len(s.subscribers))
	for _, sub := range s.subscribers {
		out = append(out, sub.fn)
	}
	return out
}
