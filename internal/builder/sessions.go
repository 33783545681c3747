package builder

import (
	"sync"
	"time"
)

// DefaultSessionTTL bounds how long an abandoned authoring session is
// kept before it is discarded.
const DefaultSessionTTL = 30 * time.Minute

type session struct {
	state   State
	acc     Accumulator
	touched time.Time
}

// SessionStore keeps one in-progress accumulator per conversation.
// Entries idle longer than the TTL are dropped on access.
type SessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[int64]session
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[int64]session),
	}
}

func (s *SessionStore) Put(conversationID int64, st State, acc Accumulator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune()
	s.sessions[conversationID] = session{state: st, acc: acc, touched: s.now()}
}

func (s *SessionStore) Get(conversationID int64) (State, Accumulator, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune()

	sess, ok := s.sessions[conversationID]
	if !ok {
		return 0, Accumulator{}, false
	}
	return sess.state, sess.acc, true
}

func (s *SessionStore) Delete(conversationID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, conversationID)
}

// prune is called with the lock held.
func (s *SessionStore) prune() {
	cutoff := s.now().Add(-s.ttl)
	for id, sess := range s.sessions {
		if sess.touched.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}
