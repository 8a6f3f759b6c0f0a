package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/voltride/voltdesk/internal/api"
	"github.com/voltride/voltdesk/internal/logger"
	"github.com/voltride/voltdesk/internal/output"
)

var (
	reportListFlags   listFlags
	reportListPeriod  string
	reportListStation string
)

var reportCmd = &cobra.Command{
	Use:     "report",
	Aliases: []string{"reports"},
	Short:   "Browse monthly operations reports",
}

var reportListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"l", "ls"},
	Short:   "List monthly per-station reports",
	Long: `Display the monthly operations reports. The --period and --station flags
narrow the fetch on the backend; the remaining filters and sorting run
client-side like every other listing.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runReportList(cmd.Context())
	},
}

func runReportList(ctx context.Context) {
	d, err := reportListFlags.directives()
	if err != nil {
		logger.Log.Fatalf("Invalid flags: %v", err)
	}

	client, err := newAPIClient(ctx)
	if err != nil {
		logger.Log.Fatalf("Failed to create API client: %v", err)
	}

	spin := output.NewSpinner("Fetching reports")
	spin.Start()

	reports, err := client.ListAllReports(ctx, api.ReportOptions{
		Period:    reportListPeriod,
		StationID: reportListStation,
	})
	if err != nil {
		spin.Fail("Failed to fetch reports")
		logger.Log.Fatalf("Failed to fetch reports: %v", err)
	}

	spin.Success("Reports retrieved")

	view, d := applyClamped(api.ReportSchema(), reports, d)

	if err := output.DisplayReports(view, d, reportListFlags.format); err != nil {
		logger.Log.Fatalf("Failed to render reports: %v", err)
	}
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.AddCommand(reportListCmd)

	reportListFlags.register(reportListCmd)
	reportListCmd.Flags().StringVar(&reportListPeriod, "period", "", "Reporting period (YYYY-MM)")
	reportListCmd.Flags().StringVar(&reportListStation, "station", "", "Restrict to one station")
}
