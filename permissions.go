package session

import (
	"strings"
	"sync"
)

// PermissionCache exposes the effective permissions of the authenticated
// user for UI gating. Keys are "module:action" strings, case-insensitive.
// Loaded once per successful login or refresh; purely advisory, the real
// check always happens on the backend.
type PermissionCache struct {
	mu     sync.RWMutex
	values map[string]bool
}

func NewPermissionCache() *PermissionCache {
	return &PermissionCache{values: map[string]bool{}}
}

// Load replaces the cache wholesale with the permission map from the login
// or refresh payload.
func (p *PermissionCache) Load(permissions map[string]bool) {
	values := make(map[string]bool, len(permissions))
	for k, v := range permissions {
		values[strings.ToLower(k)] = v
	}

	p.mu.Lock()
	p.values = values
	p.mu.Unlock()
}

// Clear empties the cache on logout or session expiry.
func (p *PermissionCache) Clear() {
	p.mu.Lock()
	p.values = map[string]bool{}
	p.mu.Unlock()
}

// Has reports whether the user holds a specific enabled permission.
// Absence of a key is equivalent to false.
func (p *PermissionCache) Has(module, action string) bool {
	key := strings.ToLower(module + ":" + action)

	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.values[key]
}

// HasAnyIn reports whether the user holds at least one enabled permission in
// the given module. Useful to show or hide whole menu entries.
func (p *PermissionCache) HasAnyIn(module string) bool {
	prefix := strings.ToLower(module) + ":"

	p.mu.RLock()
	defer p.mu.RUnlock()
	for key, enabled := range p.values {
		if enabled && strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

// All returns a copy of every loaded permission. Debugging aid only.
func (p *PermissionCache) All() map[string]bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make(map[string]bool, len(p.values))
	for k, v := range p.values {
		out[k] = v
	}
	return out
}
