package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"xray-angles/pkg/geometry"
)

// ErrSessionNotFound is returned when a session ID is unknown or expired.
var ErrSessionNotFound = errors.New("session not found")

// DefaultIdleTTL is how long a session survives without activity.
const DefaultIdleTTL = 30 * time.Minute

// Manager owns the live sessions, keyed by ID. Expired sessions are dropped
// by a periodic sweep.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	idleTTL  time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

// NewManager creates a session manager with the given idle TTL. A TTL of
// zero uses DefaultIdleTTL.
func NewManager(idleTTL time.Duration) *Manager {
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	m := &Manager{
		sessions: make(map[string]*Session),
		idleTTL:  idleTTL,
		stop:     make(chan struct{}),
	}
	go m.sweep()
	return m
}

// Create starts a new session for an image with the given dimensions.
func (m *Manager) Create(size geometry.Size) *Session {
	s := New(uuid.NewString(), size)

	m.mu.Lock()
	m.sessions[s.ID()] = s
	m.mu.Unlock()

	return s
}

// Get returns the session with the given ID.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Delete drops the session with the given ID, if present.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close stops the expiry sweep.
func (m *Manager) Close() {
	m.stopOnce.Do(func() {
		close(m.stop)
	})
}

func (m *Manager) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case now := <-ticker.C:
			m.mu.Lock()
			for id, s := range m.sessions {
				if now.Sub(s.LastActive()) > m.idleTTL {
					delete(m.sessions, id)
				}
			}
			m.mu.Unlock()
		}
	}
}
