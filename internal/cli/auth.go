package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cloudvault/cloudvault-cli/internal/api"
	"github.com/cloudvault/cloudvault-cli/internal/config"
)

// newSignupCmd creates the 'signup' command.
func newSignupCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "signup <email>",
		Short: "Create a CloudVault account",
		Long: `Create a CloudVault account.

A verification email is sent before the account can log in.

Example:
  cloudvault signup ana@example.com --name "Ana"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email := strings.TrimSpace(args[0])
			name = strings.TrimSpace(name)
			if name == "" || email == "" {
				return fmt.Errorf("name and email are required")
			}

			password, err := promptPassword("Password")
			if err != nil {
				return err
			}
			if strings.TrimSpace(password) == "" {
				return fmt.Errorf("password is required")
			}

			client, err := newClient()
			if err != nil {
				return err
			}
			if err := client.Signup(GetContext(), name, email, password); err != nil {
				return err
			}

			fmt.Println("📧 Verification email sent! Check your inbox.")
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name for the new account")

	return cmd
}

// newLoginCmd creates the 'login' command.
func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <email>",
		Short: "Log in and store the session token",
		Long: `Log in to CloudVault.

On success the session token is stored under the user config directory and
used by every file command until logout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email := strings.TrimSpace(args[0])
			if email == "" {
				return fmt.Errorf("email is required")
			}

			password, err := promptPassword("Password")
			if err != nil {
				return err
			}
			if password == "" {
				return fmt.Errorf("password is required")
			}

			client, err := newClient()
			if err != nil {
				return err
			}
			sess, err := doLogin(GetContext(), client, email, password)
			if err != nil {
				return err
			}

			fmt.Printf("✅ Logged in as %s. Try 'cloudvault files list'.\n", sess.DisplayName)
			return nil
		},
	}
}

// doLogin exchanges credentials for a session and persists it. The display
// name falls back to the email's local part when the backend sends none.
func doLogin(ctx context.Context, client *api.Client, email, password string) (*config.Session, error) {
	res, err := client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	name := res.Name
	if name == "" {
		name = localPart(email)
	}
	sess := &config.Session{Token: res.Token, DisplayName: name}
	if err := config.SaveSession(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// localPart returns everything before the first '@' of an email address.
func localPart(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}

// newLogoutCmd creates the 'logout' command.
func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ClearSession(); err != nil {
				return err
			}
			fmt.Println("👋 Logged out.")
			return nil
		},
	}
}

// newForgotPasswordCmd creates the 'forgot-password' command.
func newForgotPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forgot-password <email>",
		Short: "Request a password reset email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email := strings.TrimSpace(args[0])
			if email == "" {
				return fmt.Errorf("email is required")
			}

			client, err := newClient()
			if err != nil {
				return err
			}
			msg, err := client.ForgotPassword(GetContext(), email)
			if err != nil {
				return err
			}

			fmt.Printf("📧 %s\n", msg)
			return nil
		},
	}
}

// newResetPasswordCmd creates the 'reset-password' command.
func newResetPasswordCmd() *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Set a new password with an emailed reset token",
		Long: `Set a new password using the reset token from the emailed link.

Example:
  cloudvault reset-password --token 3f9c...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(token) == "" {
				return fmt.Errorf("invalid reset link: --token is required")
			}

			password, err := promptPassword("New password")
			if err != nil {
				return err
			}
			if len(password) < 6 {
				return fmt.Errorf("password must be at least 6 characters")
			}
			confirm, err := promptPassword("Confirm password")
			if err != nil {
				return err
			}
			if password != confirm {
				return fmt.Errorf("passwords do not match")
			}

			client, err := newClient()
			if err != nil {
				return err
			}
			if err := client.ResetPassword(GetContext(), token, password); err != nil {
				return err
			}

			fmt.Println("✅ Password updated! Log in with 'cloudvault login'.")
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Reset token from the emailed link")

	return cmd
}
