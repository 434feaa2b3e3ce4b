// Package cli provides the command-line interface for cloudvault.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cloudvault/cloudvault-cli/internal/api"
	"github.com/cloudvault/cloudvault-cli/internal/config"
	"github.com/cloudvault/cloudvault-cli/internal/logging"
)

var (
	// Global flags
	cfgFile    string
	apiBaseURL string
	verbose    bool

	// Global logger
	logger *logging.Logger

	// Global context for signal handling
	rootContext context.Context
	cancelFunc  context.CancelFunc
)

// Version information - set by main package at startup.
var (
	Version   = "v1.0.0-dev"
	BuildTime = "unknown"
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cloudvault",
		Short: "CloudVault - CLI for the CloudVault file storage service",
		Long: `CloudVault ` + Version + ` - Built: ` + BuildTime + `
Command-line client for the CloudVault file storage service.

Account:
  signup, login, logout, forgot-password, reset-password

Files:
  files list, files upload, files download, files delete`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.NewCLILogger()
			if verbose {
				logging.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&apiBaseURL, "api-url", "", "CloudVault API base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (shows debug messages)")

	rootCmd.Version = Version + " (" + BuildTime + ")"

	return rootCmd
}

// Execute runs the CLI.
func Execute() error {
	// Create a context that can be cancelled by signals
	rootContext, cancelFunc = context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		for sig := range sigChan {
			if sig != nil {
				fmt.Fprintf(os.Stderr, "\n🛑 Received signal %v, cancelling...\n", sig)
				cancelFunc()
			}
		}
	}()

	rootCmd := NewRootCmd()
	AddCommands(rootCmd)
	err := rootCmd.Execute()

	signal.Stop(sigChan)
	close(sigChan)

	return err
}

// AddCommands adds all subcommands to the root command.
func AddCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(newSignupCmd())
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newForgotPasswordCmd())
	rootCmd.AddCommand(newResetPasswordCmd())
	rootCmd.AddCommand(newFilesCmd())
}

// GetLogger returns the global CLI logger.
func GetLogger() *logging.Logger {
	if logger == nil {
		logger = logging.NewCLILogger()
	}
	return logger
}

// GetContext returns the global CLI context with signal handling.
func GetContext() context.Context {
	if rootContext == nil {
		return context.Background()
	}
	return rootContext
}

// loadConfig resolves the client configuration from flags, environment,
// and the config file.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile, apiBaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// newClient creates an API client without a session, for account flows.
func newClient() (*api.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	client, err := api.NewClient(cfg.APIBaseURL, "")
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}
	return client, nil
}

// newAuthedClient is the session guard: it loads the stored session and
// creates an authenticated client, aborting before any network call when
// the user is not logged in.
func newAuthedClient() (*api.Client, *config.Session, error) {
	sess, err := config.LoadSession()
	if err != nil {
		return nil, nil, err
	}
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	client, err := api.NewClient(cfg.APIBaseURL, sess.Token)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create API client: %w", err)
	}
	return client, sess, nil
}

// mapAuthErr converts a rejected session into the logout effect: the stored
// session is cleared and the user is pointed back at login.
func mapAuthErr(err error) error {
	if errors.Is(err, api.ErrUnauthorized) {
		_ = config.ClearSession()
		return fmt.Errorf("session expired: run 'cloudvault login' again")
	}
	return err
}
