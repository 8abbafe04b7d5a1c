package state

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/parleyapp/parley-client/internal/api"
	"github.com/parleyapp/parley-client/internal/domain"
	"github.com/parleyapp/parley-client/internal/errors"
	"github.com/parleyapp/parley-client/internal/session"
	"github.com/parleyapp/parley-client/internal/validation"
)

// authAPI is the remote surface the auth slice needs.
type authAPI interface {
	Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error)
	Register(ctx context.Context, req api.RegisterRequest) error
	Me(ctx context.Context) (*domain.Profile, error)
}

// Auth owns the authentication lifecycle around the shared session store:
// login, registration, the startup credential check, and logout.
type Auth struct {
	mu    sync.Mutex
	track tracker

	api      authAPI
	session  *session.Store
	validate *validation.Validator
	logger   *slog.Logger
	checked  bool
}

// NewAuth creates the auth slice. Loading starts true: until CheckAuth
// settles, the session state is unknown and route guards must wait.
func NewAuth(remote authAPI, sess *session.Store, v *validation.Validator, ttl time.Duration, logger *slog.Logger) *Auth {
	a := &Auth{
		api:      remote,
		session:  sess,
		validate: v,
		logger:   logger,
	}
	a.track = newTracker(&a.mu, ttl)
	a.track.loading = true
	return a
}

// CheckAuth resolves a restored credential at startup: it confirms the token
// against the remote service and seeds the profile. Missing or expired
// credentials settle into a signed-out session, not an error.
func (a *Auth) CheckAuth(ctx context.Context) {
	a.mu.Lock()
	a.track.begin()
	a.mu.Unlock()

	a.session.Restore()

	var err error
	if a.session.Token() != "" {
		var me *domain.Profile
		me, err = a.api.Me(ctx)
		if err == nil {
			a.session.Set(a.session.Token(), me)
			a.logger.Info("credential confirmed", slog.String("username", me.Username))
		} else if errors.Is(err, errors.ErrUnauthorized) {
			// The API client already tore the session down; a dead token is
			// the signed-out case, not a user-facing failure.
			err = nil
		}
	}

	a.mu.Lock()
	a.track.finish(err)
	a.checked = true
	a.mu.Unlock()
}

// Login validates credentials locally, exchanges them for a token, and
// installs the resulting session.
func (a *Auth) Login(ctx context.Context, req api.LoginRequest) error {
	if err := a.validate.Validate(req); err != nil {
		a.recordError(err)
		return err
	}

	a.mu.Lock()
	a.track.begin()
	a.mu.Unlock()

	resp, err := a.api.Login(ctx, req)
	if err == nil {
		a.session.Set(resp.Token, resp.User)
		a.logger.Info("signed in", slog.String("username", resp.User.Username))
	}

	a.mu.Lock()
	a.track.finish(err)
	a.checked = true
	a.mu.Unlock()
	return err
}

// Register creates an account. The user signs in separately afterwards.
func (a *Auth) Register(ctx context.Context, req api.RegisterRequest) error {
	if err := a.validate.Validate(req); err != nil {
		a.recordError(err)
		return err
	}

	a.mu.Lock()
	a.track.begin()
	a.mu.Unlock()

	err := a.api.Register(ctx, req)

	a.mu.Lock()
	a.track.finish(err)
	a.mu.Unlock()
	return err
}

// Logout drops the session locally. There is no server call; the token is
// simply forgotten.
func (a *Auth) Logout() {
	a.session.Clear()

	a.mu.Lock()
	a.track.setError("")
	a.mu.Unlock()
}

// Snapshot returns the session as seen by the UI, including the slice's
// loading/error pair.
func (a *Auth) Snapshot() domain.Session {
	snap := a.session.Snapshot()

	a.mu.Lock()
	snap.Loading = a.track.loading
	snap.Error = a.track.err
	a.mu.Unlock()
	return snap
}

// Checked reports whether the startup credential check has completed.
func (a *Auth) Checked() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.checked
}

// ClearError dismisses the slice's error without touching the session or the
// loading flag. Safe to call when no error is present.
func (a *Auth) ClearError() {
	a.mu.Lock()
	a.track.setError("")
	a.mu.Unlock()
}

func (a *Auth) recordError(err error) {
	a.mu.Lock()
	a.track.setError(err.Error())
	a.mu.Unlock()
}
