package browse

import (
	"sync"
	"time"
)

// Registry holds live sessions keyed by id so a stateless HTTP client can
// drive one session across requests. Expired sessions are purged lazily on
// access.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
}

// NewRegistry creates a registry with the given idle TTL.
func NewRegistry(ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Registry{
		sessions: map[string]*Session{},
		ttl:      ttl,
	}
}

// Create registers a new session over the given source.
func (r *Registry) Create(source Source, cfg SessionConfig) *Session {
	s := NewSession(source, cfg)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.purgeExpiredLocked()
	r.sessions[s.ID] = s
	return s
}

// Get returns the session with the given id, if it is still alive.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.purgeExpiredLocked()
	s, ok := r.sessions[id]
	return s, ok
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.purgeExpiredLocked()
	return len(r.sessions)
}

func (r *Registry) purgeExpiredLocked() {
	cutoff := time.Now().Add(-r.ttl)
	for id, s := range r.sessions {
		if s.LastUsed().Before(cutoff) {
			delete(r.sessions, id)
		}
	}
}
