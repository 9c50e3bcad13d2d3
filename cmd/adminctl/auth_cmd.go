package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	tokenjwt "github.com/jrsteele09/go-admin-client/token/jwt"
	"github.com/jrsteele09/go-admin-client/token/refresh"
	"github.com/spf13/cobra"
)

// withApp builds the app for one command and closes it afterwards
func withApp(cfg *cliConfig, run func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cfg, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer a.Close()
		return run(cmd, a, args)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newLoginCommand(cfg *cliConfig) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the refresh token",
		RunE: withApp(cfg, func(cmd *cobra.Command, a *app, args []string) error {
			resp, err := a.auth.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s <%s>\n", resp.User.Name, resp.User.Email)
			return err
		}),
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCommand(cfg *cliConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the refresh token",
		RunE: withApp(cfg, func(cmd *cobra.Command, a *app, args []string) error {
			if err := a.auth.Logout(cmd.Context()); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return err
		}),
	}
}

func newStatusCommand(cfg *cliConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the stored refresh token",
		RunE: withApp(cfg, func(cmd *cobra.Command, a *app, args []string) error {
			out := cmd.OutOrStdout()
			token, ok, err := a.store.Get(cmd.Context(), refresh.CredentialKey)
			if err != nil {
				return err
			}
			if !ok {
				_, err = fmt.Fprintln(out, "Signed out")
				return err
			}

			claims, err := tokenjwt.Inspect(token)
			if errors.Is(err, tokenjwt.ErrOpaqueToken) {
				_, err = fmt.Fprintln(out, "Signed in (opaque refresh token)")
				return err
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Signed in as %s\n", claims.Subject)
			if !claims.ExpiresAt.IsZero() {
				state := "valid"
				if claims.Expired(time.Now()) {
					state = "expired"
				}
				fmt.Fprintf(out, "Refresh token %s until %s\n", state, claims.ExpiresAt.Format(time.RFC3339))
			}
			return nil
		}),
	}
}

func newProfileCommand(cfg *cliConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the signed-in profile and menu",
		RunE: withApp(cfg, func(cmd *cobra.Command, a *app, args []string) error {
			profile, err := a.auth.Profile(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), profile)
		}),
	}
}
