package state

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/parleyapp/parley-client/internal/api"
	"github.com/parleyapp/parley-client/internal/domain"
	"github.com/parleyapp/parley-client/internal/validation"
)

// usersAPI is the remote surface the users slice needs.
type usersAPI interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	ActivateUser(ctx context.Context, id string) (*domain.User, error)
	DeactivateUser(ctx context.Context, id string) (*domain.User, error)
	BanUser(ctx context.Context, id string, in api.BanInput) (*domain.User, error)
	UnbanUser(ctx context.Context, id string) (*domain.User, error)
}

// Users holds the member listing for the admin dashboard. Every moderation
// action folds the server's updated record back in place.
type Users struct {
	mu    sync.Mutex
	track tracker

	api      usersAPI
	validate *validation.Validator
	logger   *slog.Logger

	list *collection[domain.User]
}

// NewUsers creates the users slice.
func NewUsers(remote usersAPI, v *validation.Validator, ttl time.Duration, logger *slog.Logger) *Users {
	u := &Users{
		api:      remote,
		validate: v,
		logger:   logger,
		list:     newCollection(func(user domain.User) string { return user.ID }),
	}
	u.track = newTracker(&u.mu, ttl)
	return u
}

// FetchAll replaces the member listing.
func (u *Users) FetchAll(ctx context.Context) error {
	u.mu.Lock()
	u.track.begin()
	u.mu.Unlock()

	users, err := u.api.ListUsers(ctx)

	u.mu.Lock()
	defer u.mu.Unlock()
	u.track.finish(err)
	if err != nil {
		return err
	}
	u.list.replace(users)
	return nil
}

// Activate re-enables a deactivated account.
func (u *Users) Activate(ctx context.Context, id string) (*domain.User, error) {
	return u.commit(ctx, func(ctx context.Context) (*domain.User, error) {
		return u.api.ActivateUser(ctx, id)
	})
}

// Deactivate disables an account without removing it.
func (u *Users) Deactivate(ctx context.Context, id string) (*domain.User, error) {
	return u.commit(ctx, func(ctx context.Context) (*domain.User, error) {
		return u.api.DeactivateUser(ctx, id)
	})
}

// Ban bans an account for a duration in hours; a nil duration is permanent.
func (u *Users) Ban(ctx context.Context, id string, in api.BanInput) (*domain.User, error) {
	if err := u.validate.Validate(in); err != nil {
		u.mu.Lock()
		u.track.setError(err.Error())
		u.mu.Unlock()
		return nil, err
	}
	return u.commit(ctx, func(ctx context.Context) (*domain.User, error) {
		return u.api.BanUser(ctx, id, in)
	})
}

// Unban lifts a ban.
func (u *Users) Unban(ctx context.Context, id string) (*domain.User, error) {
	return u.commit(ctx, func(ctx context.Context) (*domain.User, error) {
		return u.api.UnbanUser(ctx, id)
	})
}

func (u *Users) commit(ctx context.Context, call func(context.Context) (*domain.User, error)) (*domain.User, error) {
	u.mu.Lock()
	u.track.begin()
	u.mu.Unlock()

	user, err := call(ctx)

	u.mu.Lock()
	defer u.mu.Unlock()
	u.track.finish(err)
	if err != nil {
		return nil, err
	}
	u.list.set(*user)
	u.logger.Info("user moderation applied", slog.String("user_id", user.ID))
	return user, nil
}

// All returns the member listing in display order.
func (u *Users) All() []domain.User {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.list.items()
}

// Get returns one user by id.
func (u *Users) Get(id string) (domain.User, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.list.get(id)
}

// ClearError dismisses the slice's error without touching loading or data.
// Safe to call when no error is present.
func (u *Users) ClearError() {
	u.mu.Lock()
	u.track.setError("")
	u.mu.Unlock()
}

// Status returns the slice's loading/error pair.
func (u *Users) Status() Status {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.track.status()
}
