// Package guard decides whether a route may render for the current session.
// It is pure decision logic: callers perform the redirect or wait themselves.
package guard

import (
	"log/slog"

	"github.com/parleyapp/parley-client/internal/domain"
)

// Entry routes are reachable signed out; a signed-in user is bounced from
// them to their role's home.
const (
	PathRoot     = "/"
	PathLogin    = "/login"
	PathRegister = "/register"

	PathHome      = "/dashboard"
	PathAdminHome = "/admin/dashboard"
)

// Action is what the caller should do with the route.
type Action int

const (
	// Wait means the session state is still unknown; render nothing yet.
	Wait Action = iota
	// Render means the route may be shown.
	Render
	// Redirect means navigate to Decision.To instead.
	Redirect
)

func (a Action) String() string {
	switch a {
	case Wait:
		return "wait"
	case Render:
		return "render"
	case Redirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Route describes the access requirements of one destination.
type Route struct {
	Path string
	// RequiresAuth routes bounce signed-out visitors to the login page.
	RequiresAuth bool
	// AdminOnly routes additionally require the admin role.
	AdminOnly bool
}

// Decision is the guard's verdict on one navigation.
type Decision struct {
	Action Action
	// To is the redirect destination when Action is Redirect.
	To string
	// From is the originally requested path, recorded on login redirects so
	// the visitor can be returned there after signing in.
	From string
}

// Guard resolves navigation against the session.
type Guard struct {
	logger *slog.Logger
}

// New creates a guard.
func New(logger *slog.Logger) *Guard {
	return &Guard{logger: logger}
}

// Resolve applies the access rules in order: unknown session waits, missing
// auth redirects to login, entry routes bounce signed-in users home, admin
// routes bounce non-admins to the regular home.
func (g *Guard) Resolve(route Route, sess domain.Session) Decision {
	if sess.Loading {
		return Decision{Action: Wait}
	}

	if route.RequiresAuth && !sess.IsAuthenticated {
		g.logger.Debug("redirecting to login",
			slog.String("from", route.Path))
		return Decision{Action: Redirect, To: PathLogin, From: route.Path}
	}

	if isEntry(route.Path) && sess.IsAuthenticated {
		return Decision{Action: Redirect, To: homeFor(sess.Role())}
	}

	if route.AdminOnly && sess.Role() != domain.RoleAdmin {
		g.logger.Warn("admin route refused",
			slog.String("path", route.Path),
			slog.String("role", string(sess.Role())))
		return Decision{Action: Redirect, To: PathHome}
	}

	return Decision{Action: Render}
}

// isEntry reports whether the path is reachable signed out by design.
func isEntry(path string) bool {
	return path == PathRoot || path == PathLogin || path == PathRegister
}

// homeFor returns the landing page for a role.
func homeFor(role domain.Role) string {
	if role == domain.RoleAdmin {
		return PathAdminHome
	}
	return PathHome
}
