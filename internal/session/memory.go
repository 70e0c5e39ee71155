// Package session provides in-memory session storage.
package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory session store. Expired entries are dropped
// lazily whenever a session is written.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry
}

type memoryEntry struct {
	data      *Data
	expiresAt time.Time
}

// NewMemoryStore creates a new in-memory session store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*memoryEntry),
	}
}

// Get retrieves a session by key
func (s *MemoryStore) Get(_ context.Context, key string) (*Data, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}

	return cloneData(entry.data), true
}

// Set stores a session with the given TTL
func (s *MemoryStore) Set(_ context.Context, key string, data *Data, ttl time.Duration) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for k, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, k)
		}
	}

	s.entries[key] = &memoryEntry{
		data:      cloneData(data),
		expiresAt: now.Add(ttl),
	}
}

// Delete removes a session
func (s *MemoryStore) Delete(_ context.Context, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
}

func (s *MemoryStore) Close() error {
	return nil
}
