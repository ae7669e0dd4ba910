/*
sessions.go - In-memory registry of in-flight exchanges

PURPOSE:
  The HTTP gateway is stateless between calls, but each exchange owns one
  Request that lives across several calls. The registry keeps those
  Requests keyed by an opaque session id and serializes events per
  session: one user-input event runs to completion (including the ledger
  append) before the next is admitted.

LIFECYCLE:
  Sessions are created on POST /api/withdrawals and removed the moment
  the request reaches completed or failed. Abandoned sessions are swept
  after a TTL - nothing needs rolling back since no write happens before
  the commit step.

SEE ALSO:
  - handlers.go: The only caller
*/
package api

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/warp/withdrawal-desk/withdraw"
)

// DefaultSessionTTL is how long an abandoned exchange is kept.
const DefaultSessionTTL = 15 * time.Minute

// ErrSessionNotFound is returned when an exchange id is unknown or the
// exchange already finished.
var ErrSessionNotFound = errors.New("session not found")

type session struct {
	mu        sync.Mutex
	req       *withdraw.Request
	createdAt time.Time
}

// Sessions is a thread-safe registry of in-flight exchanges.
type Sessions struct {
	mu       sync.RWMutex
	sessions map[string]*session
	ttl      time.Duration
}

func NewSessions(ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Sessions{
		sessions: make(map[string]*session),
		ttl:      ttl,
	}
}

// Create registers a request and returns its session id.
func (s *Sessions) Create(req *withdraw.Request) string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = &session{req: req, createdAt: time.Now()}
	return id
}

// With runs fn against the session's request, holding the session lock so
// events are handled one at a time. fn returning done=true removes the
// session (the exchange reached a terminal status).
func (s *Sessions) With(id string, fn func(req *withdraw.Request) (done bool, err error)) error {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return ErrSessionNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	done, err := fn(sess.req)
	if done {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
	}
	return err
}

// Sweep drops sessions older than the TTL and returns how many were
// removed. The server runs this periodically.
func (s *Sessions) Sweep() int {
	cutoff := time.Now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.createdAt.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of in-flight exchanges.
func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
