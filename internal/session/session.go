// Package session holds the client's authentication state: the bearer token
// and the signed-in user's profile. The store is handed to the API client at
// construction as an explicit accessor/mutator, so the "any 401 clears the
// session" reaction is a callback contract rather than ambient global state.
package session

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/parleyapp/parley-client/internal/domain"
	"github.com/parleyapp/parley-client/internal/localstore"
)

// Persisted keys.
const (
	keyToken = "session/token"
	keyUser  = "session/user"
)

// Store is the mutable session context shared by the API client, the push
// channel, and the auth slice. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	token   string
	user    *domain.Profile
	persist *localstore.Store
	logger  *slog.Logger
}

// New creates a session store backed by the given local store.
// A nil persist disables persistence.
func New(persist *localstore.Store, logger *slog.Logger) *Store {
	return &Store{persist: persist, logger: logger}
}

// Restore seeds the session from persisted local state, if any.
// Called once at startup; missing state is not an error.
func (s *Store) Restore() {
	if s.persist == nil {
		return
	}

	var token string
	if err := s.persist.Get(keyToken, &token); err != nil {
		if !errors.Is(err, localstore.ErrNotFound) {
			s.logger.Warn("failed to restore session token", "error", err)
		}
		return
	}

	var user domain.Profile
	if err := s.persist.Get(keyUser, &user); err != nil {
		if !errors.Is(err, localstore.ErrNotFound) {
			s.logger.Warn("failed to restore session user", "error", err)
		}
		return
	}

	s.mu.Lock()
	s.token = token
	s.user = &user
	s.mu.Unlock()

	s.logger.Debug("session restored", "user", user.Username)
}

// Token returns the current bearer credential, or empty when signed out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the signed-in user's profile, or nil.
func (s *Store) User() *domain.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Authenticated reports whether both token and user are present.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

// Set installs a new credential and profile, persisting them.
func (s *Store) Set(token string, user *domain.Profile) {
	s.mu.Lock()
	s.token = token
	s.user = user
	s.mu.Unlock()

	if s.persist == nil {
		return
	}
	if err := s.persist.Put(keyToken, token); err != nil {
		s.logger.Warn("failed to persist session token", "error", err)
	}
	if err := s.persist.Put(keyUser, user); err != nil {
		s.logger.Warn("failed to persist session user", "error", err)
	}
}

// Clear drops the credential and profile and wipes persisted state.
// Invoked on logout and, via the API client, on any 401 response.
func (s *Store) Clear() {
	s.mu.Lock()
	wasAuthed := s.token != "" || s.user != nil
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if s.persist != nil {
		if err := s.persist.Delete(keyToken, keyUser); err != nil {
			s.logger.Warn("failed to clear persisted session", "error", err)
		}
	}

	if wasAuthed {
		s.logger.Info("session cleared")
	}
}

// Invalidate implements the API client's session teardown contract.
// It is the process-wide reaction to an authorization failure from any call.
func (s *Store) Invalidate() {
	s.Clear()
}

// Snapshot returns the session as the UI-facing value, without the
// slice-owned loading/error flags.
func (s *Store) Snapshot() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var user *domain.Profile
	if s.user != nil {
		u := *s.user
		user = &u
	}
	return domain.Session{
		Token:           s.token,
		User:            user,
		IsAuthenticated: s.token != "" && s.user != nil,
	}
}
