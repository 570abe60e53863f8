package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// MemoryTokenStore is a map-backed TokenStore. It is the browser-tab
// analog: tokens live exactly as long as the process.
type MemoryTokenStore struct {
	mu     sync.RWMutex
	values map[string]string
}

var _ TokenStore = (*MemoryTokenStore)(nil)

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{values: map[string]string{}}
}

func (s *MemoryTokenStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemoryTokenStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

func (s *MemoryTokenStore) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

// FileTokenStore persists values as a single JSON document on disk with
// owner-only permissions. Tokens are stored in cleartext at rest; callers
// needing stronger guarantees should bring their own TokenStore.
//
// All operations are best-effort per the TokenStore contract: I/O failures
// are logged and swallowed, never propagated.
type FileTokenStore struct {
	mu     sync.Mutex
	path   string
	logger Logger
}

var _ TokenStore = (*FileTokenStore)(nil)

// NewFileTokenStore creates a store writing to the given file path.
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path, logger: defLogger{}}
}

// DefaultFileTokenStore places the store under ~/.<namespace>/session.json.
func DefaultFileTokenStore(namespace string) (*FileTokenStore, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(home, "."+namespace)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}

	return NewFileTokenStore(filepath.Join(dir, "session.json")), nil
}

func (s *FileTokenStore) WithLogger(logger Logger) *FileTokenStore {
	if logger != nil {
		s.logger = logger
	}
	return s
}

func (s *FileTokenStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := s.load()
	v, ok := values[key]
	return v, ok
}

func (s *FileTokenStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := s.load()
	values[key] = value
	s.save(values)
}

func (s *FileTokenStore) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := s.load()
	if _, ok := values[key]; !ok {
		return
	}
	delete(values, key)
	s.save(values)
}

func (s *FileTokenStore) load() map[string]string {
	values := map[string]string{}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("token store read failed: %v", err)
		}
		return values
	}

	if err := json.Unmarshal(data, &values); err != nil {
		s.logger.Warn("token store file corrupt, starting empty: %v", err)
		return map[string]string{}
	}

	return values
}

func (s *FileTokenStore) save(values map[string]string) {
	data, err := json.Marshal(values)
	if err != nil {
		s.logger.Warn("token store encode failed: %v", err)
		return
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		s.logger.Warn("token store write failed: %v", err)
	}
}
