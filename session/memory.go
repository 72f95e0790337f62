package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryStore struct {
	mu        sync.Mutex
	sessions  map[string]*Session
	prompt    string
	retention time.Duration
	now       func() time.Time
}

// NewMemoryStore creates a Store backed by a process-local map. State is not
// durable: a process restart loses every session. The retention window bounds
// memory growth; the sweep runs inline with each Save rather than on a
// background schedule, so every write reclaims whatever has expired.
func NewMemoryStore(cfg *Config) Store {
	return &memoryStore{
		sessions:  make(map[string]*Session),
		prompt:    cfg.SystemPrompt,
		retention: cfg.Retention(),
		now:       time.Now,
	}
}

func (m *memoryStore) GetOrCreate(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		return s.Clone()
	}
	return New(id, m.prompt)
}

func (m *memoryStore) Save(id string, s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s.LastUpdated = m.now()
	m.sessions[id] = s.Clone()

	m.evictExpiredLocked()
}

func (m *memoryStore) EvictExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evictExpiredLocked()
}

// evictExpiredLocked removes expired sessions. Callers must hold m.mu.
func (m *memoryStore) evictExpiredLocked() {
	cutoff := m.now().Add(-m.retention)
	for id, s := range m.sessions {
		if s.LastUpdated.Before(cutoff) {
			delete(m.sessions, id)
		}
	}
}

func (m *memoryStore) NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}
