package cart

import "sync"

// Session owns one shopper's cart state for the lifetime of their visit.
// Cart state is session-local; the mutex serializes mutations arriving from
// the same session.
type Session struct {
	UserID int64

	mu    sync.Mutex
	state State
}

// NewSession creates an empty cart session for a user.
func NewSession(userID int64) *Session {
	return &Session{UserID: userID, state: Empty()}
}

// State returns a snapshot of the current cart.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies a transition and returns the resulting state.
func (s *Session) Dispatch(t Transition) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Apply(s.state, t)
	return s.state
}

// Manager hands out cart sessions keyed by user id. Only the session map is
// shared; each cart belongs to exactly one session.
type Manager struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[int64]*Session)}
}

// Session returns the user's cart session, creating one on first use.
func (m *Manager) Session(userID int64) *Session {
	m.mu.RLock()
	s, ok := m.sessions[userID]
	m.mu.RUnlock()
	if ok {
		return s
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[userID]; ok {
		return s
	}
	s = NewSession(userID)
	m.sessions[userID] = s
	return s
}

// Drop discards a user's session, ending their cart lifecycle.
func (m *Manager) Drop(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}
