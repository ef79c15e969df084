package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(email) == "" || password == "" {
				return errors.New("Email and password are required")
			}
			sess, _, err := app.setup(cmd.Context())
			if err != nil {
				return err
			}
			u, err := sess.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			return printJSON(cmd, app, u)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	return cmd
}

func newRegisterCmd(app *App) *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(name) == "" {
				return errors.New("Name is required")
			}
			if strings.TrimSpace(email) == "" || password == "" {
				return errors.New("Email and password are required")
			}
			sess, _, err := app.setup(cmd.Context())
			if err != nil {
				return err
			}
			u, err := sess.Register(cmd.Context(), name, email, password)
			if err != nil {
				return err
			}
			return printJSON(cmd, app, u)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the locally persisted session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, err := app.setup(cmd.Context())
			if err != nil {
				return err
			}
			sess.Logout(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, err := app.setup(cmd.Context())
			if err != nil {
				return err
			}
			u := sess.Restore(cmd.Context())
			if u == nil {
				return errors.New("not logged in")
			}
			return printJSON(cmd, app, u)
		},
	}
}
