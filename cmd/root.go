// Package cmd provides the command-line interface for the voltdesk tool
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/voltride/voltdesk/internal/api"
	"github.com/voltride/voltdesk/internal/cache"
	"github.com/voltride/voltdesk/internal/config"
	"github.com/voltride/voltdesk/internal/logger"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "voltdesk",
	Short: "Operations console for the VoltRide rental network",
	Long:  "A CLI and terminal UI for managing VoltRide stations, vehicles, staff, and monthly reports",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := logger.SetLevel(logLevel); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid log level '%s': %v\n", logLevel, err)
			os.Exit(1)
		}
		logger.Log.Debugf("Log level set to: %s", logLevel)
	},
	// Bare "voltdesk" on a terminal drops into the interactive UI.
	RunE: func(cmd *cobra.Command, args []string) error {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return runInteractive(cmd, args)
		}
		return cmd.Help()
	},
}

func Execute() error {
	return ExecuteContext(context.Background())
}

func ExecuteContext(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Set the logging level (debug, info, warn, error, fatal)")
}

// newAPIClient loads the environment configuration and builds the backend
// client shared by all commands.
func newAPIClient(ctx context.Context) (*api.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	return api.NewClient(ctx, api.Config{
		BaseURL: cfg.APIURL,
		Token:   cfg.APIToken,
		Timeout: cfg.Timeout,
	})
}

// openCache opens the snapshot cache at the configured path.
func openCache() (*cache.Cache, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	return cache.Open(cfg.CachePath)
}
