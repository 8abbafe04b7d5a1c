package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/parleyapp/parley-client/internal/api"
	"github.com/parleyapp/parley-client/internal/state"
)

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Sign in and store the session locally",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, args []string) error {
		password, err := readPassword()
		if err != nil {
			return err
		}

		auth := do.MustInvoke[*state.Auth](a.injector)
		if err := auth.Login(ctx, api.LoginRequest{Username: args[0], Password: password}); err != nil {
			return err
		}

		snap := auth.Snapshot()
		printf("signed in as %s (%s)\n", snap.User.Username, snap.User.Role)
		return nil
	}),
}

var registerCmd = &cobra.Command{
	Use:   "register <username> <email>",
	Short: "Create an account",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(ctx context.Context, a *app, args []string) error {
		password, err := readPassword()
		if err != nil {
			return err
		}

		auth := do.MustInvoke[*state.Auth](a.injector)
		if err := auth.Register(ctx, api.RegisterRequest{
			Username: args[0],
			Email:    args[1],
			Password: password,
		}); err != nil {
			return err
		}

		printf("account created; run 'parley login %s' to sign in\n", args[0])
		return nil
	}),
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Drop the stored session and vote cache",
	RunE: withApp(func(ctx context.Context, a *app, args []string) error {
		do.MustInvoke[*state.Auth](a.injector).Logout()
		do.MustInvoke[*state.Votes](a.injector).ClearLocal()
		printf("signed out\n")
		return nil
	}),
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: withApp(func(ctx context.Context, a *app, args []string) error {
		snap := do.MustInvoke[*state.Auth](a.injector).Snapshot()
		if !snap.IsAuthenticated {
			printf("not signed in\n")
			return nil
		}
		printf("%s <%s> role=%s\n", snap.User.Username, snap.User.Email, snap.User.Role)
		return nil
	}),
}

// readPassword reads the password from stdin. Piped input is supported for
// scripting; interactive input is echoed.
func readPassword() (string, error) {
	fmt.Fprint(os.Stderr, "password: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func init() {
	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
}
