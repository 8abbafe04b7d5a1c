package api

import (
	"context"

	"github.com/parleyapp/parley-client/internal/domain"
)

// BanInput describes a ban: a nil Duration is permanent.
type BanInput struct {
	Duration *int   `json:"duration"` // hours
	Reason   string `json:"reason" validate:"required,max=500"`
}

// ListUsers returns every user for the admin dashboard.
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	if err := c.get(ctx, "/auth/users", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ActivateUser re-enables a deactivated account.
func (c *Client) ActivateUser(ctx context.Context, id string) (*domain.User, error) {
	var out domain.User
	if err := c.patch(ctx, userPath(id, "activate"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeactivateUser disables an account without removing it.
func (c *Client) DeactivateUser(ctx context.Context, id string) (*domain.User, error) {
	var out domain.User
	if err := c.patch(ctx, userPath(id, "deactivate"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BanUser bans an account for a duration in hours, or permanently.
func (c *Client) BanUser(ctx context.Context, id string, in BanInput) (*domain.User, error) {
	var out domain.User
	if err := c.patch(ctx, userPath(id, "ban"), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UnbanUser lifts a ban.
func (c *Client) UnbanUser(ctx context.Context, id string) (*domain.User, error) {
	var out domain.User
	if err := c.patch(ctx, userPath(id, "unban"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
