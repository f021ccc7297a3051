package session

import (
	"sync"
	"time"
)

// Session is the per-user state the frontend used to keep in local storage:
// who is signed in and which tenant they act for.
type Session struct {
	UserID       string
	EmployeeID   string
	EmployeeName string
	TenantID     string
	Email        string
	Role         string
	CreatedAt    time.Time
	ExpiresAt    time.Time
}

// Store holds sessions keyed by user ID. It is created at process start and
// entries are cleared at logout.
type Store interface {
	Get(key string) (Session, bool)
	Set(key string, s Session)
	Clear(key string)
}

// MemoryStore is a process-local Store with a fixed TTL per entry.
type MemoryStore struct {
	mu       sync.RWMutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]Session
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]Session),
	}
}

// Get returns the live session for key. Expired entries are dropped.
func (m *MemoryStore) Get(key string) (Session, bool) {
	m.mu.RLock()
	s, ok := m.sessions[key]
	m.mu.RUnlock()
	if !ok {
		return Session{}, false
	}
	if m.expired(s, m.now()) {
		m.clearIfExpired(key)
		return Session{}, false
	}
	return s, true
}

// clearIfExpired deletes key only if the stored entry is still expired, so a
// Set that raced in after the read survives.
func (m *MemoryStore) clearIfExpired(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[key]; ok && m.expired(s, m.now()) {
		delete(m.sessions, key)
	}
}

func (m *MemoryStore) expired(s Session, now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Set stores s under key, stamping CreatedAt and ExpiresAt.
func (m *MemoryStore) Set(key string, s Session) {
	now := m.now()
	s.CreatedAt = now
	s.ExpiresAt = now.Add(m.ttl)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[key] = s
}

func (m *MemoryStore) Clear(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, key)
}

// Len reports the number of stored entries, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep removes expired entries and returns how many were removed.
func (m *MemoryStore) Sweep() int {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for k, s := range m.sessions {
		if m.expired(s, now) {
			delete(m.sessions, k)
			removed++
		}
	}
	return removed
}
