// internal/app/store/sessions/store.go
package sessionstore

import (
	"sync"
	"time"

	"github.com/dalemusser/matpredict/internal/app/catalog"
	"github.com/dalemusser/matpredict/internal/app/interaction"
	"github.com/google/uuid"
)

// Session is the server-side state of one visitor.
type Session struct {
	ID        string
	State     *interaction.State
	CreatedAt time.Time

	mu           sync.Mutex
	lastActiveAt time.Time
}

// LastActiveAt returns when the session was last used.
func (s *Session) LastActiveAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActiveAt
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastActiveAt = now
	s.mu.Unlock()
}

// Store keeps visitor sessions in memory. Nothing is persisted: a restart
// starts every visitor from an empty selection.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	cat      *catalog.Catalog
	now      func() time.Time
}

// New creates an empty Store whose sessions select from cat.
func New(cat *catalog.Catalog) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		cat:      cat,
		now:      time.Now,
	}
}

// Create starts a new session with a random id and an Idle state.
func (s *Store) Create() *Session {
	now := s.now().UTC()
	sess := &Session{
		ID:           uuid.NewString(),
		State:        interaction.New(s.cat),
		CreatedAt:    now,
		lastActiveAt: now,
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

// Get returns the session for id and marks it active.
func (s *Store) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	s.mu.Lock()
	sess, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		return nil, false
	}
	sess.touch(s.now().UTC())
	return sess, true
}

// GetOrCreate returns the session for id, or a new one when id is unknown.
// created reports whether a new session was made.
func (s *Store) GetOrCreate(id string) (sess *Session, created bool) {
	if sess, ok := s.Get(id); ok {
		return sess, false
	}
	return s.Create(), true
}

// Delete removes a session.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Count returns the number of live sessions.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// CloseInactive removes sessions idle for longer than threshold and returns
// how many were removed. Sessions in the middle of a prediction are kept.
func (s *Store) CloseInactive(threshold time.Duration) int {
	cutoff := s.now().UTC().Add(-threshold)

	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, sess := range s.sessions {
		if sess.LastActiveAt().After(cutoff) {
			continue
		}
		if sess.State.Phase() == interaction.Predicting {
			continue
		}
		delete(s.sessions, id)
		n++
	}
	return n
}
