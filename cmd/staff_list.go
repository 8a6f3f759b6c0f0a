package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/voltride/voltdesk/internal/api"
	"github.com/voltride/voltdesk/internal/logger"
	"github.com/voltride/voltdesk/internal/output"
)

var (
	staffListFlags  listFlags
	staffListCached bool
)

var staffListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"l", "ls"},
	Short:   "List staff accounts",
	Long: `Display staff accounts with client-side filtering, sorting, and
pagination. The --kind flag filters by role (manager, technician, support).`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runStaffList(cmd.Context())
	},
}

func runStaffList(ctx context.Context) {
	d, err := staffListFlags.directives()
	if err != nil {
		logger.Log.Fatalf("Invalid flags: %v", err)
	}

	staff, err := fetchStaff(ctx, staffListCached)
	if err != nil {
		logger.Log.Fatalf("Failed to fetch staff: %v", err)
	}

	view, d := applyClamped(api.StaffSchema(), staff, d)

	if err := output.DisplayStaff(view, d, staffListFlags.format); err != nil {
		logger.Log.Fatalf("Failed to render staff: %v", err)
	}
}

func fetchStaff(ctx context.Context, cached bool) ([]api.Staff, error) {
	c, err := openCache()
	if err != nil {
		logger.Log.Warnf("Snapshot cache unavailable: %v", err)
		c = nil
	} else {
		defer func() { _ = c.Close() }()
	}

	if cached && c != nil {
		if staff, ok := c.Staff(); ok {
			logger.Log.Debugf("Serving %d staff members from cache", len(staff))

			return staff, nil
		}

		logger.Log.Debug("No fresh staff snapshot, fetching from backend")
	}

	client, err := newAPIClient(ctx)
	if err != nil {
		return nil, err
	}

	spin := output.NewSpinner("Fetching staff")
	spin.Start()

	staff, err := client.ListAllStaff(ctx, api.ListOptions{})
	if err != nil {
		spin.Fail("Failed to fetch staff")

		return nil, err
	}

	spin.Success("Staff retrieved")

	if c != nil {
		if err := c.SaveStaff(staff); err != nil {
			logger.Log.Warnf("Failed to cache staff: %v", err)
		}
	}

	return staff, nil
}

func init() {
	staffCmd.AddCommand(staffListCmd)

	staffListFlags.register(staffListCmd)
	staffListCmd.Flags().BoolVar(&staffListCached, "cached", false,
		"Serve the last snapshot when it is fresher than the cache TTL")
}
