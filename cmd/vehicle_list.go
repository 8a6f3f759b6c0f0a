package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/voltride/voltdesk/internal/api"
	"github.com/voltride/voltdesk/internal/logger"
	"github.com/voltride/voltdesk/internal/output"
)

var (
	vehicleListFlags  listFlags
	vehicleListCached bool
)

var vehicleListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"l", "ls"},
	Short:   "List fleet vehicles",
	Long: `Display the vehicle fleet with client-side filtering, sorting, and
pagination. The --kind flag filters by vehicle type (scooter, ebike, car) and
the fleet status breakdown always covers the whole fleet, not just the page.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runVehicleList(cmd.Context())
	},
}

func runVehicleList(ctx context.Context) {
	d, err := vehicleListFlags.directives()
	if err != nil {
		logger.Log.Fatalf("Invalid flags: %v", err)
	}

	vehicles, err := fetchVehicles(ctx, vehicleListCached)
	if err != nil {
		logger.Log.Fatalf("Failed to fetch vehicles: %v", err)
	}

	view, d := applyClamped(api.VehicleSchema(), vehicles, d)

	if err := output.DisplayVehicles(view, d, vehicleListFlags.format); err != nil {
		logger.Log.Fatalf("Failed to render vehicles: %v", err)
	}
}

func fetchVehicles(ctx context.Context, cached bool) ([]api.Vehicle, error) {
	c, err := openCache()
	if err != nil {
		logger.Log.Warnf("Snapshot cache unavailable: %v", err)
		c = nil
	} else {
		defer func() { _ = c.Close() }()
	}

	if cached && c != nil {
		if vehicles, ok := c.Vehicles(); ok {
			logger.Log.Debugf("Serving %d vehicles from cache", len(vehicles))

			return vehicles, nil
		}

		logger.Log.Debug("No fresh vehicle snapshot, fetching from backend")
	}

	client, err := newAPIClient(ctx)
	if err != nil {
		return nil, err
	}

	spin := output.NewSpinner("Fetching vehicles")
	spin.Start()

	vehicles, err := client.ListAllVehicles(ctx, api.ListOptions{})
	if err != nil {
		spin.Fail("Failed to fetch vehicles")

		return nil, err
	}

	spin.Success("Vehicles retrieved")

	if c != nil {
		if err := c.SaveVehicles(vehicles); err != nil {
			logger.Log.Warnf("Failed to cache vehicles: %v", err)
		}
	}

	return vehicles, nil
}

func init() {
	vehicleCmd.AddCommand(vehicleListCmd)

	vehicleListFlags.register(vehicleListCmd)
	vehicleListCmd.Flags().BoolVar(&vehicleListCached, "cached", false,
		"Serve the last snapshot when it is fresher than the cache TTL")
}
