package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Manager issues and tracks sessions by id.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	gate     *Gate
	logger   *slog.Logger
}

// NewManager creates a manager whose sessions log in through gate.
func NewManager(gate *Gate, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Manager{
		sessions: make(map[string]*Session),
		gate:     gate,
		logger:   logger,
	}
}

// Anonymous returns an unauthenticated session the manager does not track.
// Visitors hold one until they log in.
func (m *Manager) Anonymous() *Session {
	return New("", m.gate, m.logger)
}

// Login checks c and, on success, tracks and returns a fresh authenticated
// session. A failed attempt returns core.ErrAuth and tracks nothing.
func (m *Manager) Login(ctx context.Context, c Credentials) (*Session, error) {
	s := New(uuid.NewString(), m.gate, m.logger)
	if err := s.Login(ctx, c); err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s, nil
}

// Create starts a new unauthenticated tracked session.
func (m *Manager) Create() *Session {
	s := New(uuid.NewString(), m.gate, m.logger)
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get returns the session with id.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Destroy forgets the session with id. Unknown ids are ignored.
func (m *Manager) Destroy(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
