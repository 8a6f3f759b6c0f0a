package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/voltride/voltdesk/internal/api"
	"github.com/voltride/voltdesk/internal/cache"
	"github.com/voltride/voltdesk/internal/logger"
	"github.com/voltride/voltdesk/internal/output"
)

var (
	stationListFlags  listFlags
	stationListCached bool
)

var stationListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"l", "ls"},
	Short:   "List rental stations",
	Long: `Display the rental stations with client-side filtering, sorting, and
pagination. Search is a plain substring match, so accented Vietnamese names
must be typed with their diacritics.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runStationList(cmd.Context())
	},
}

func runStationList(ctx context.Context) {
	d, err := stationListFlags.directives()
	if err != nil {
		logger.Log.Fatalf("Invalid flags: %v", err)
	}

	stations, err := fetchStations(ctx, stationListCached)
	if err != nil {
		logger.Log.Fatalf("Failed to fetch stations: %v", err)
	}

	view, d := applyClamped(api.StationSchema(), stations, d)

	if err := output.DisplayStations(view, d, stationListFlags.format); err != nil {
		logger.Log.Fatalf("Failed to render stations: %v", err)
	}
}

// fetchStations returns the station collection, preferring a fresh snapshot
// from the cache when cached is set and falling back to the backend.
func fetchStations(ctx context.Context, cached bool) ([]api.Station, error) {
	c, err := openCache()
	if err != nil {
		logger.Log.Warnf("Snapshot cache unavailable: %v", err)
		c = nil
	} else {
		defer func() { _ = c.Close() }()
	}

	if cached && c != nil {
		if stations, ok := c.Stations(); ok {
			logger.Log.Debugf("Serving %d stations from cache", len(stations))

			return stations, nil
		}

		logger.Log.Debug("No fresh station snapshot, fetching from backend")
	}

	client, err := newAPIClient(ctx)
	if err != nil {
		return nil, err
	}

	spin := output.NewSpinner("Fetching stations")
	spin.Start()

	stations, err := client.ListAllStations(ctx, api.ListOptions{})
	if err != nil {
		spin.Fail("Failed to fetch stations")

		return nil, err
	}

	spin.Success("Stations retrieved")

	if c != nil {
		if err := c.SaveStations(stations); err != nil {
			logger.Log.Warnf("Failed to cache stations: %v", err)
		}
	}

	return stations, nil
}

func init() {
	stationCmd.AddCommand(stationListCmd)

	stationListFlags.register(stationListCmd)
	stationListCmd.Flags().BoolVar(&stationListCached, "cached", false,
		"Serve the last snapshot when it is fresher than the cache TTL ("+cache.DefaultTTL.String()+" by default)")
}
