package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/labshare-dev/labshare/internal/api"
	"github.com/labshare-dev/labshare/internal/cli/auth"
	"github.com/labshare-dev/labshare/internal/cli/userconfig"
)

// NewLoginCmd creates the login command
func NewLoginCmd(d *Deps) *cobra.Command {
	var username, password, userType string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with the platform",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd.Context(), d, username, password, userType)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Student, teacher or admin ID (or set LABSHARE_USERNAME)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set LABSHARE_PASSWORD, will prompt if not provided)")
	cmd.Flags().StringVar(&userType, "type", "", "User type: student, teacher or admin (will prompt if not provided)")

	return cmd
}

func runLogin(ctx context.Context, d *Deps, username, password, userType string) error {
	// Environment variables are useful for CI/CD
	if username == "" {
		username = os.Getenv("LABSHARE_USERNAME")
	}
	if password == "" {
		password = os.Getenv("LABSHARE_PASSWORD")
	}

	if username == "" {
		return fmt.Errorf("username is required (use --username flag or LABSHARE_USERNAME env var)")
	}

	role, err := resolveUserType(userType)
	if err != nil {
		return err
	}

	if password == "" {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("password is required in non-interactive mode (use --password flag or LABSHARE_PASSWORD env var)")
		}
		fmt.Fprint(d.Out, "Password: ")
		bytePassword, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = string(bytePassword)
		fmt.Fprintln(d.Out)
	}

	server, err := d.Server()
	if err != nil {
		return err
	}
	apiClient, err := d.Client()
	if err != nil {
		return err
	}

	d.printf("Logging in to %s (%s)...\n", server.Alias, server.URL)

	result, err := apiClient.Login(ctx, api.LoginInput{Username: username, Password: password, UserType: role})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if result.Token == "" {
		return fmt.Errorf("login failed: server returned no token")
	}

	if err := d.Tokens.SaveToken(server.URL, result.Token); err != nil {
		return fmt.Errorf("failed to save authentication token: %w", err)
	}
	if err := userconfig.SaveProfile(server.URL, result.User); err != nil {
		return fmt.Errorf("failed to cache profile: %w", err)
	}
	d.resetSession()

	d.Logger.Info().Str("user_id", result.User.ID).Str("user_type", string(result.User.UserType)).Msg("Logged in")

	return d.render(result.User, func(w io.Writer) {
		fmt.Fprintln(w, "✓ Login successful!")
		fmt.Fprintf(w, "  User: %s (%s)\n", orDash(result.User.Name), result.User.ID)
		fmt.Fprintf(w, "  Role: %s\n", result.User.UserType)
	})
}

// resolveUserType validates the --type flag or prompts for it on a terminal
func resolveUserType(raw string) (api.UserType, error) {
	if raw != "" {
		role := api.UserType(raw)
		if !slices.Contains(api.UserTypes, role) {
			return "", fmt.Errorf("invalid user type %q (use student, teacher or admin)", raw)
		}
		return role, nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return api.UserTypeStudent, nil
	}

	prompt := promptui.Select{
		Label: "Log in as",
		Items: api.UserTypes,
	}
	index, _, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("user type selection cancelled: %w", err)
	}
	return api.UserTypes[index], nil
}

// NewLogoutCmd creates the logout command
func NewLogoutCmd(d *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token for the selected server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := d.Server()
			if err != nil {
				return err
			}

			if err := d.Tokens.DeleteToken(server.URL); err != nil {
				return err
			}
			if err := userconfig.ClearProfile(server.URL); err != nil {
				return err
			}
			d.resetSession()

			fmt.Fprintf(d.Out, "✓ Logged out of %s (%s)\n", server.Alias, server.URL)
			return nil
		},
	}
}

type whoami struct {
	Server    string       `json:"server" yaml:"server"`
	Profile   *api.Profile `json:"profile" yaml:"profile"`
	Admin     bool         `json:"is_admin" yaml:"is_admin"`
	ExpiresAt string       `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
}

// NewWhoamiCmd creates the whoami command
func NewWhoamiCmd(d *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := d.Server()
			if err != nil {
				return err
			}

			sess := d.Session()
			if !sess.IsLoggedIn() || sess.Profile == nil {
				return auth.ErrNotAuthenticated
			}

			out := whoami{Server: server.URL, Profile: sess.Profile, Admin: sess.IsAdmin()}
			if exp, ok := sess.ExpiresAt(); ok {
				out.ExpiresAt = exp.Local().Format("2006-01-02 15:04:05")
			}

			return d.render(out, func(w io.Writer) {
				p := out.Profile
				fmt.Fprintf(w, "ID:\t%s\n", p.ID)
				fmt.Fprintf(w, "Name:\t%s\n", orDash(p.Name))
				fmt.Fprintf(w, "Role:\t%s\n", p.UserType)
				fmt.Fprintf(w, "Lab:\t%s\n", formatLab(p.LabID))
				if p.Dept != "" {
					fmt.Fprintf(w, "Dept:\t%s\n", p.Dept)
				}
				fmt.Fprintf(w, "Server:\t%s\n", out.Server)
				if out.ExpiresAt != "" {
					fmt.Fprintf(w, "Expires:\t%s\n", out.ExpiresAt)
				}
			})
		},
	}
}
