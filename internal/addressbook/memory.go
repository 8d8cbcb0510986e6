package addressbook

import (
	"context"
	"sync"

	"addressbook/internal/address"
)

// MemoryStore is an in-memory Store for development and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]address.Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]address.Entry),
	}
}

func (s *MemoryStore) AddAddress(_ context.Context, entry address.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.ID] = entry
	return nil
}

// Entries returns a copy of all stored entries in no particular order.
func (s *MemoryStore) Entries() []address.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]address.Entry, 0, len(s.entries))
	for _, entry := range s.entries {
		out = append(out, entry)
	}
	return out
}

var _ Store = (*MemoryStore)(nil)
