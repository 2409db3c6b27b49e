package memory

import (
	"context"
	"sync"
)

// SettingsStore is an in-memory key-value store for user preferences.
type SettingsStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewSettingsStore creates an empty settings store
func NewSettingsStore() *SettingsStore {
	return &SettingsStore{values: make(map[string]string)}
}

// Get returns the stored value and whether the key exists
func (s *SettingsStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

// Set stores a value under the key
func (s *SettingsStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}
