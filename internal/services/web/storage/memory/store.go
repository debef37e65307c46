// Package memory provides an in-process session store.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	webstorage "github.com/louisbranch/earlypay/internal/services/web/storage"
)

type session struct {
	values  map[string]string
	touched time.Time
}

// Store keeps session values in memory. Sessions idle longer than the
// configured window are dropped on access.
type Store struct {
	mu       sync.Mutex
	idle     time.Duration
	now      func() time.Time
	sessions map[string]*session
}

// New returns an empty store. A non-positive idle disables expiry.
func New(idle time.Duration) *Store {
	return &Store{idle: idle, now: time.Now, sessions: map[string]*session{}}
}

// GetValue returns the value stored under key for sessionID.
func (s *Store) GetValue(_ context.Context, sessionID, key string) (string, bool, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return "", false, webstorage.ErrSessionRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.live(sessionID)
	if sess == nil {
		return "", false, nil
	}
	value, ok := sess.values[key]
	return value, ok, nil
}

// PutValue stores value under key for sessionID.
func (s *Store) PutValue(_ context.Context, sessionID, key, value string) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return webstorage.ErrSessionRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.live(sessionID)
	if sess == nil {
		sess = &session{values: map[string]string{}}
		s.sessions[sessionID] = sess
	}
	sess.values[key] = value
	sess.touched = s.now()
	return nil
}

// DeleteValue removes key from sessionID.
func (s *Store) DeleteValue(_ context.Context, sessionID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess := s.live(strings.TrimSpace(sessionID)); sess != nil {
		delete(sess.values, key)
	}
	return nil
}

// DeleteSession drops every value held for sessionID.
func (s *Store) DeleteSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, strings.TrimSpace(sessionID))
	return nil
}

// PruneExpired removes idle sessions and reports how many were dropped.
func (s *Store) PruneExpired(context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pruned := 0
	for id, sess := range s.sessions {
		if s.expired(sess) {
			delete(s.sessions, id)
			pruned++
		}
	}
	return pruned, nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

// live returns the session and refreshes its idle clock. Callers hold mu.
func (s *Store) live(sessionID string) *session {
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	if s.expired(sess) {
		delete(s.sessions, sessionID)
		return nil
	}
	sess.touched = s.now()
	return sess
}

func (s *Store) expired(sess *session) bool {
	return s.idle > 0 && s.now().Sub(sess.touched) > s.idle
}
