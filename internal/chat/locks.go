package chat

import "sync"

// sessionLocks serializes transcript mutation per session so concurrent
// requests from the same session interleave whole turns rather than
// individual appends. Lock entries are never removed; the set of sessions
// is bounded by the set of users plus client IPs.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[string]*sync.Mutex)}
}

func (s *sessionLocks) get(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}
