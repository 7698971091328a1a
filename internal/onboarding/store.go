package onboarding

import "sync"

// SessionStore keeps one in-flight wizard per user. Sessions are
// memory-only: abandoning the wizard costs nothing, and completion hands
// the selections to the Completer before the session is dropped.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]Wizard
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]Wizard)}
}

// Get returns the user's wizard, creating a fresh one on first access.
func (s *SessionStore) Get(userID string) Wizard {
	s.mu.RLock()
	w, ok := s.sessions[userID]
	s.mu.RUnlock()
	if ok {
		return w
	}

	w = New()
	s.mu.Lock()
	// Another request may have created the session in between; keep it.
	if existing, ok := s.sessions[userID]; ok {
		w = existing
	} else {
		s.sessions[userID] = w
	}
	s.mu.Unlock()
	return w
}

// Put stores the user's wizard state.
func (s *SessionStore) Put(userID string, w Wizard) {
	s.mu.Lock()
	s.sessions[userID] = w
	s.mu.Unlock()
}

// Delete drops the user's session.
func (s *SessionStore) Delete(userID string) {
	s.mu.Lock()
	delete(s.sessions, userID)
	s.mu.Unlock()
}
