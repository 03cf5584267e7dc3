package session

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the process-wide credential slot. All mutations go through
// the Session so the backing store and in-memory view stay consistent.
type Session struct {
	mu    sync.RWMutex
	store Store
	token string
}

// New creates a session backed by the given store, loading any
// previously persisted token.
func New(store Store) (*Session, error) {
	token, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Session{store: store, token: token}, nil
}

// Token returns the current bearer token, or "" if not authenticated.
// Callers must treat the token as absent-at-any-time: a concurrent
// logout may clear it while a request is already in flight.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Authenticated reports whether a token is present.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// SetToken replaces the stored token.
func (s *Session) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Save(token); err != nil {
		return err
	}
	s.token = token
	return nil
}

// Clear erases the token from memory and the backing store.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Clear(); err != nil {
		return err
	}
	s.token = ""
	return nil
}

// ExpiresAt returns the expiry claim of the stored token, if the token
// is a JWT carrying one. The signature is not verified; verification is
// the service's job, this is for display only.
func (s *Session) ExpiresAt() (time.Time, bool) {
	token := s.Token()
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
