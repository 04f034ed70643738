package conversation

import (
	"sync"
	"time"
)

type session struct {
	store    Store
	lastSeen time.Time
}

// Registry hands out one Store per session id. Sessions idle for longer than
// the TTL are dropped the next time the registry is touched.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	newStore func() Store
	now      func() time.Time
}

// NewRegistry creates a registry of in-memory logs. A ttl <= 0 keeps sessions forever.
func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		sessions: make(map[string]*session),
		ttl:      ttl,
		newStore: func() Store { return NewMemoryStore() },
		now:      time.Now,
	}
}

// Get returns the log of a session, creating it on first use
func (r *Registry) Get(id string) Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.expireLocked(now)

	s, ok := r.sessions[id]
	if !ok {
		s = &session{store: r.newStore()}
		r.sessions[id] = s
	}
	s.lastSeen = now
	return s.store
}

// Peek returns the log of a session without creating or refreshing it
func (r *Registry) Peek(id string) (Store, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.expireLocked(r.now())
	s, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	return s.store, true
}

// Delete forgets a session
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Len returns the number of live sessions
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.expireLocked(r.now())
	return len(r.sessions)
}

func (r *Registry) expireLocked(now time.Time) {
	if r.ttl <= 0 {
		return
	}
	for id, s := range r.sessions {
		if now.Sub(s.lastSeen) > r.ttl {
			delete(r.sessions, id)
		}
	}
}
