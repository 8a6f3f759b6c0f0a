package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/voltride/voltdesk/internal/api"
	"github.com/voltride/voltdesk/internal/logger"
	"github.com/voltride/voltdesk/internal/output"
)

var dashboardFormat string

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the operations dashboard",
	Long: `Display the network-wide aggregates: fleet counts, active rentals, and
month-to-date revenue, together with the stations running low on available
vehicles. Summary and station data are fetched concurrently.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runDashboard(cmd.Context())
	},
}

func runDashboard(ctx context.Context) {
	client, err := newAPIClient(ctx)
	if err != nil {
		logger.Log.Fatalf("Failed to create API client: %v", err)
	}

	spin := output.NewSpinner("Fetching dashboard data")
	spin.Start()

	var (
		summary  *api.Summary
		stations []api.Station
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary, err = client.GetSummary(gctx)

		return err
	})
	g.Go(func() error {
		var err error
		stations, err = client.ListAllStations(gctx, api.ListOptions{Status: api.StationActive})

		return err
	})

	if err := g.Wait(); err != nil {
		spin.Fail("Failed to fetch dashboard data")
		logger.Log.Fatalf("Failed to fetch dashboard data: %v", err)
	}

	spin.Success("Dashboard data retrieved")

	if dashboardFormat == output.FormatJSON {
		if err := output.DisplaySummary(summary, output.FormatJSON); err != nil {
			logger.Log.Fatalf("Failed to render summary: %v", err)
		}

		return
	}

	if err := output.DisplaySummary(summary, dashboardFormat); err != nil {
		logger.Log.Fatalf("Failed to render summary: %v", err)
	}

	printLowAvailability(stations)
}

// printLowAvailability lists active stations whose available vehicle count
// dropped below a fifth of their capacity.
func printLowAvailability(stations []api.Station) {
	var low []api.Station
	for _, st := range stations {
		if st.Capacity > 0 && st.AvailableCount*5 < st.Capacity {
			low = append(low, st)
		}
	}

	if len(low) == 0 {
		return
	}

	sort.Slice(low, func(i, j int) bool {
		return low[i].AvailableCount < low[j].AvailableCount
	})

	fmt.Println("\nStations low on vehicles:")

	for _, st := range low {
		fmt.Printf("  %s (%s): %d/%d available\n", st.Name, st.District, st.AvailableCount, st.Capacity)
	}
}

func init() {
	rootCmd.AddCommand(dashboardCmd)

	dashboardCmd.Flags().StringVarP(&dashboardFormat, "output", "o",
		output.DefaultFormat(output.FormatText, []string{output.FormatText, output.FormatJSON}),
		"Output format: text, json")
}
