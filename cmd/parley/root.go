package main

import (
	"context"
	"fmt"
	"os"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/parleyapp/parley-client/internal/di"
	"github.com/parleyapp/parley-client/internal/guard"
	"github.com/parleyapp/parley-client/internal/logger"
	"github.com/parleyapp/parley-client/internal/state"
)

var rootCmd = &cobra.Command{
	Use:   "parley",
	Short: "Parley forum client",
	Long: `Parley keeps a local, live-updating view of a forum: topics,
threaded comments, votes, and the signed-in session.`,
	SilenceUsage: true,
}

// app bundles the wired container for command bodies.
type app struct {
	injector *do.RootScope
	log      *logger.Logger
}

// setup builds the container and resolves the restored credential, so every
// command starts from a settled session.
func setup(ctx context.Context) (*app, error) {
	injector := di.NewContainer()
	if err := di.Bootstrap(injector); err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	a := &app{
		injector: injector,
		log:      do.MustInvoke[*logger.Logger](injector),
	}

	auth := do.MustInvoke[*state.Auth](injector)
	auth.CheckAuth(ctx)
	return a, nil
}

// teardown shuts the container down, flushing local state.
func (a *app) teardown() {
	if err := a.injector.Shutdown(); err != nil {
		a.log.Error("shutdown error", "error", err)
	}
}

// withApp wraps a command body with container setup and teardown.
func withApp(run func(ctx context.Context, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer a.teardown()
		return run(cmd.Context(), a, args)
	}
}

// requireRoute resolves the command's destination against the session via
// the route guard, mapping its verdict to a command error.
func requireRoute(a *app, route guard.Route) (*state.Auth, error) {
	auth := do.MustInvoke[*state.Auth](a.injector)
	g := do.MustInvoke[*guard.Guard](a.injector)

	decision := g.Resolve(route, auth.Snapshot())
	if err := decisionError(decision); err != nil {
		return nil, err
	}
	return auth, nil
}

// decisionError turns a guard verdict into the error a command reports.
// Render passes; everything else refuses the command.
func decisionError(d guard.Decision) error {
	switch d.Action {
	case guard.Render:
		return nil
	case guard.Redirect:
		if d.To == guard.PathLogin {
			return fmt.Errorf("not signed in; run 'parley login' first")
		}
		return fmt.Errorf("admin role required")
	default:
		return fmt.Errorf("session state unresolved; try again")
	}
}

// requireAuth fails fast when the command needs a signed-in session.
func requireAuth(a *app) (*state.Auth, error) {
	return requireRoute(a, guard.Route{Path: "/topics", RequiresAuth: true})
}

func printf(format string, args ...any) {
	fmt.Fprintf(os.Stdout, format, args...)
}
