package api

import (
	"context"
	"fmt"

	"github.com/parleyapp/parley-client/internal/domain"
)

// LoginRequest contains user credentials.
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// RegisterRequest contains new account data.
type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=32"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=128"`
	AvatarURL string `json:"avatarUrl,omitempty" validate:"omitempty,url"`
}

// AuthResponse is returned by a successful login.
type AuthResponse struct {
	Token string          `json:"token"`
	User  *domain.Profile `json:"user"`
}

// Login exchanges credentials for a bearer token and profile.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.post(ctx, "/auth/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a new account. The user logs in separately afterwards.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.post(ctx, "/auth/register", req, nil)
}

// Me returns the profile belonging to the current credential.
// Used at startup to confirm a restored token is still live.
func (c *Client) Me(ctx context.Context) (*domain.Profile, error) {
	var out domain.Profile
	if err := c.get(ctx, "/auth/me", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// userPath builds an admin user operation path.
func userPath(id, op string) string {
	return fmt.Sprintf("/auth/users/%s/%s", id, op)
}
