package main

import (
	"context"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/parleyapp/parley-client/internal/api"
	"github.com/parleyapp/parley-client/internal/guard"
	"github.com/parleyapp/parley-client/internal/state"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Moderation commands (admin role required)",
}

// requireAdmin fails fast when the signed-in user is not an admin. The
// server enforces this too; checking here just gives a clearer message.
func requireAdmin(a *app) error {
	_, err := requireRoute(a, guard.Route{Path: "/admin/users", RequiresAuth: true, AdminOnly: true})
	return err
}

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List every member",
	RunE: withApp(func(ctx context.Context, a *app, args []string) error {
		if err := requireAdmin(a); err != nil {
			return err
		}

		users := do.MustInvoke[*state.Users](a.injector)
		if err := users.FetchAll(ctx); err != nil {
			return err
		}

		for _, u := range users.All() {
			status := "active"
			if !u.IsActive {
				status = "inactive"
			}
			if u.BanStatus.IsBanned {
				status = "banned"
				if u.BanStatus.BanExpires == nil {
					status = "banned (permanent)"
				}
			}
			printf("%-24s %-20s %-6s %s\n", u.ID, u.Username, u.Role, status)
		}
		return nil
	}),
}

var adminBanCmd = &cobra.Command{
	Use:   "ban <user-id> <reason>",
	Short: "Ban a member; omit --hours for a permanent ban",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(ctx context.Context, a *app, args []string) error {
		if err := requireAdmin(a); err != nil {
			return err
		}

		in := api.BanInput{Reason: args[1]}
		if cmdFlags.banHours > 0 {
			hours := cmdFlags.banHours
			in.Duration = &hours
		}

		users := do.MustInvoke[*state.Users](a.injector)
		banned, err := users.Ban(ctx, args[0], in)
		if err != nil {
			return err
		}
		if banned.BanStatus.BanExpires == nil {
			printf("%s banned permanently\n", banned.Username)
		} else {
			printf("%s banned until %s\n", banned.Username, banned.BanStatus.BanExpires.Format("2006-01-02 15:04"))
		}
		return nil
	}),
}

var adminUnbanCmd = &cobra.Command{
	Use:   "unban <user-id>",
	Short: "Lift a ban",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, args []string) error {
		if err := requireAdmin(a); err != nil {
			return err
		}
		users := do.MustInvoke[*state.Users](a.injector)
		u, err := users.Unban(ctx, args[0])
		if err != nil {
			return err
		}
		printf("%s unbanned\n", u.Username)
		return nil
	}),
}

var adminDeactivateCmd = &cobra.Command{
	Use:   "deactivate <user-id>",
	Short: "Deactivate an account",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, args []string) error {
		if err := requireAdmin(a); err != nil {
			return err
		}
		users := do.MustInvoke[*state.Users](a.injector)
		u, err := users.Deactivate(ctx, args[0])
		if err != nil {
			return err
		}
		printf("%s deactivated\n", u.Username)
		return nil
	}),
}

var adminActivateCmd = &cobra.Command{
	Use:   "activate <user-id>",
	Short: "Re-enable a deactivated account",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, args []string) error {
		if err := requireAdmin(a); err != nil {
			return err
		}
		users := do.MustInvoke[*state.Users](a.injector)
		u, err := users.Activate(ctx, args[0])
		if err != nil {
			return err
		}
		printf("%s activated\n", u.Username)
		return nil
	}),
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Browse and manage categories",
}

var categoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	RunE: withApp(func(ctx context.Context, a *app, args []string) error {
		cats := do.MustInvoke[*state.Categories](a.injector)
		if err := cats.FetchAll(ctx); err != nil {
			return err
		}
		for _, cat := range cats.All() {
			printf("%-24s %-24s %s\n", cat.ID, cat.Slug, cat.Name)
		}
		return nil
	}),
}

var categoriesCreateCmd = &cobra.Command{
	Use:   "create <name> [description]",
	Short: "Create a category (slug is derived from the name)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: withApp(func(ctx context.Context, a *app, args []string) error {
		if err := requireAdmin(a); err != nil {
			return err
		}

		in := api.CategoryInput{Name: args[0]}
		if len(args) == 2 {
			in.Description = args[1]
		}

		cats := do.MustInvoke[*state.Categories](a.injector)
		cat, err := cats.Create(ctx, in)
		if err != nil {
			return err
		}
		printf("created category %s (slug %s)\n", cat.ID, cat.Slug)
		return nil
	}),
}

var categoriesDeleteCmd = &cobra.Command{
	Use:   "delete <category-id>",
	Short: "Delete a category permanently",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, args []string) error {
		if err := requireAdmin(a); err != nil {
			return err
		}
		cats := do.MustInvoke[*state.Categories](a.injector)
		if err := cats.Delete(ctx, args[0]); err != nil {
			return err
		}
		printf("category %s deleted\n", args[0])
		return nil
	}),
}

func init() {
	adminBanCmd.Flags().IntVar(&cmdFlags.banHours, "hours", 0, "ban duration in hours (0 = permanent)")

	adminCmd.AddCommand(adminUsersCmd, adminBanCmd, adminUnbanCmd, adminDeactivateCmd, adminActivateCmd)
	categoriesCmd.AddCommand(categoriesListCmd, categoriesCreateCmd, categoriesDeleteCmd)
	rootCmd.AddCommand(adminCmd, categoriesCmd)
}
