package cachestore

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	payload   []byte
	createdAt time.Time
	expiresAt time.Time
}

// MemoryStore is an in-process CacheStore. It is the default backend for
// single runs and the substitute used by tests; Redis or Postgres back the
// persistent variants.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry

	// now is swapped in tests to exercise expiry without sleeping.
	now func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Get returns a miss for absent and for stale entries alike. Stale entries
// stay in place until the next Put overwrites them.
func (m *MemoryStore) Get(_ context.Context, signature string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ent, ok := m.entries[signature]
	if !ok {
		return nil, false, nil
	}
	if m.now().After(ent.expiresAt) {
		return nil, false, nil
	}

	// Copy so callers cannot mutate the cached payload.
	out := make([]byte, len(ent.payload))
	copy(out, ent.payload)
	return out, true, nil
}

func (m *MemoryStore) Put(_ context.Context, signature string, payload []byte, ttl time.Duration) error {
	cp := make([]byte, len(payload))
	copy(cp, payload)

	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[signature] = memoryEntry{
		payload:   cp,
		createdAt: now,
		expiresAt: now.Add(ttl),
	}
	return nil
}

func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]memoryEntry)
	return nil
}
