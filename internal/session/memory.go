package session

import (
	"context"
	"sync"
	"time"

	"github.com/wolfman30/tennis-booking/internal/frontend"
)

type memoryEntry struct {
	data    []byte
	expires time.Time
}

// MemoryStore is an in-process Store for local runs and tests. Sessions
// are stored encoded so callers never share a *Session.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore creates an empty store. A zero ttl never expires.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *MemoryStore) Load(_ context.Context, id string) (*frontend.Session, error) {
	m.mu.Lock()
	entry, ok := m.entries[id]
	if ok && !entry.expires.IsZero() && !m.now().Before(entry.expires) {
		delete(m.entries, id)
		ok = false
	}
	m.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}
	return decode(entry.data)
}

func (m *MemoryStore) Save(_ context.Context, id string, s *frontend.Session) error {
	data, err := encode(s)
	if err != nil {
		return err
	}
	entry := memoryEntry{data: data}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ttl > 0 {
		entry.expires = m.now().Add(m.ttl)
	}
	m.entries[id] = entry
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.entries, id)
	m.mu.Unlock()
	return nil
}
