package store

import (
	"sync"

	"github.com/neuraledu/neural-conquest/internal/game"
)

// SessionStore manages the live engines by session id and join code
type SessionStore struct {
	sessions map[string]*game.Engine
	codes    map[string]string // join code -> session id
	mu       sync.RWMutex
}

// NewSessionStore creates a new session store
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*game.Engine),
		codes:    make(map[string]string),
	}
}

// Get retrieves a session engine by id
func (s *SessionStore) Get(id string) (*game.Engine, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	eng, exists := s.sessions[id]
	return eng, exists
}

// GetByCode retrieves a session engine by join code
func (s *SessionStore) GetByCode(code string) (*game.Engine, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, exists := s.codes[code]
	if !exists {
		return nil, false
	}
	eng, exists := s.sessions[id]
	return eng, exists
}

// Set stores a session engine
func (s *SessionStore) Set(id, joinCode string, eng *game.Engine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = eng
	if joinCode != "" {
		s.codes[joinCode] = id
	}
}

// Delete removes a session engine
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for code, sid := range s.codes {
		if sid == id {
			delete(s.codes, code)
		}
	}
	delete(s.sessions, id)
}

// CodeExists checks whether a join code is taken
func (s *SessionStore) CodeExists(code string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.codes[code]
	return exists
}
