package session

import "sync"

// InMemoryStore is a thread-safe, in-memory implementation of Store.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]Turn
}

// NewInMemoryStore creates a new empty transcript store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		sessions: make(map[string][]Turn),
	}
}

// Compile-time interface check.
var _ Store = (*InMemoryStore)(nil)

// Append adds a turn to the session's transcript.
func (s *InMemoryStore) Append(sessionID string, turn Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = append(s.sessions[sessionID], turn)
	return nil
}

// Turns returns a copy of the session's transcript in insertion order.
func (s *InMemoryStore) Turns(sessionID string) ([]Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	result := make([]Turn, len(turns))
	copy(result, turns)
	return result, nil
}

// Len returns the number of turns recorded for a session.
func (s *InMemoryStore) Len(sessionID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions[sessionID]), nil
}

// Sessions returns the number of tracked sessions.
func (s *InMemoryStore) Sessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Purge removes a session's transcript.
func (s *InMemoryStore) Purge(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
