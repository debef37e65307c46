package storage

import (
	"context"
	"errors"
	"strings"
)

// ErrSessionRequired is returned when a call carries no session id.
var ErrSessionRequired = errors.New("session id is required")

// SessionStore persists string values keyed by session id and key.
type SessionStore interface {
	GetValue(ctx context.Context, sessionID, key string) (string, bool, error)
	PutValue(ctx context.Context, sessionID, key, value string) error
	DeleteValue(ctx context.Context, sessionID, key string) error
	DeleteSession(ctx context.Context, sessionID string) error
	Close() error
}

// Scoped binds a SessionStore to one browser session.
type Scoped struct {
	store     SessionStore
	sessionID string
}

// Scope returns the view of store for sessionID.
func Scope(store SessionStore, sessionID string) Scoped {
	return Scoped{store: store, sessionID: strings.TrimSpace(sessionID)}
}

// SessionID returns the bound session id.
func (s Scoped) SessionID() string {
	return s.sessionID
}

// Get returns the value for key, or "" when it is not set.
func (s Scoped) Get(ctx context.Context, key string) (string, error) {
	if err := s.check(); err != nil {
		return "", err
	}
	value, ok, err := s.store.GetValue(ctx, s.sessionID, key)
	if err != nil || !ok {
		return "", err
	}
	return value, nil
}

// Set stores value under key.
func (s Scoped) Set(ctx context.Context, key, value string) error {
	if err := s.check(); err != nil {
		return err
	}
	return s.store.PutValue(ctx, s.sessionID, key, value)
}

// Remove deletes key.
func (s Scoped) Remove(ctx context.Context, key string) error {
	if err := s.check(); err != nil {
		return err
	}
	return s.store.DeleteValue(ctx, s.sessionID, key)
}

func (s Scoped) check() error {
	if s.store == nil {
		return errors.New("session store is not configured")
	}
	if s.sessionID == "" {
		return ErrSessionRequired
	}
	return nil
}
