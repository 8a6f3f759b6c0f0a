package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/voltride/voltdesk/internal/logger"
	"github.com/voltride/voltdesk/internal/tui"
)

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"ui"},
	Short:   "Launch the interactive terminal UI",
	Long: `Start the terminal UI for keyboard-driven fleet operations:

- Browse stations, vehicles, staff, and reports
- Filter, sort, and page through collections
- Select vehicles in bulk and change their status
- Trigger station syncs and create staff accounts

Press '?' at any time to see keyboard shortcuts.`,
	Args: cobra.NoArgs,
	RunE: runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

func runInteractive(cmd *cobra.Command, args []string) error {
	client, err := newAPIClient(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	c, err := openCache()
	if err != nil {
		logger.Log.Warnf("Snapshot cache unavailable: %v", err)
		c = nil
	} else {
		defer func() { _ = c.Close() }()
	}

	app, err := tui.NewApp(cmd.Context(), &tui.Config{
		Client: client,
		Cache:  c,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize the terminal UI: %w", err)
	}

	if err := app.Run(); err != nil {
		return fmt.Errorf("terminal UI error: %w", err)
	}

	return nil
}
