package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/voltride/voltdesk/internal/api"
	"github.com/voltride/voltdesk/internal/logger"
	"github.com/voltride/voltdesk/internal/mutation"
	"github.com/voltride/voltdesk/internal/output"
)

var stationSyncFormat string

var stationSyncCmd = &cobra.Command{
	Use:   "sync <station-id>",
	Short: "Reconcile a station's fleet with the backend",
	Long: `Trigger a fleet reconciliation for one station. The backend rejects a sync
while another one is already running for the same station.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runStationSync(cmd.Context(), args[0])
	},
}

func runStationSync(ctx context.Context, id string) {
	client, err := newAPIClient(ctx)
	if err != nil {
		logger.Log.Fatalf("Failed to create API client: %v", err)
	}

	spin := output.NewSpinner("Syncing station " + id)
	spin.Start()

	result, err := client.SyncStation(ctx, id)
	if err != nil {
		spin.Fail("Sync failed")

		switch {
		case api.IsConflict(err):
			logger.Log.Fatalf("A sync is already running for station %s", id)
		case api.IsAmbiguous(err):
			logger.Log.Fatalf("Sync outcome unknown: %v. %s", err, mutation.VerifyHint)
		default:
			logger.Log.Fatalf("Failed to sync station: %v", err)
		}
	}

	spin.Success("Station synced")

	if err := output.DisplaySyncResult(result, stationSyncFormat); err != nil {
		logger.Log.Fatalf("Failed to render sync result: %v", err)
	}
}

func init() {
	stationCmd.AddCommand(stationSyncCmd)

	stationSyncCmd.Flags().StringVarP(&stationSyncFormat, "output", "o",
		output.DefaultFormat(output.FormatText, []string{output.FormatText, output.FormatJSON}),
		"Output format: text, json")
}
