package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/voltride/voltdesk/internal/api"
	"github.com/voltride/voltdesk/internal/logger"
	"github.com/voltride/voltdesk/internal/output"
)

var stationGetFormat string

var stationGetCmd = &cobra.Command{
	Use:   "get <station-id>",
	Short: "Show one rental station",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runStationGet(cmd.Context(), args[0])
	},
}

func runStationGet(ctx context.Context, id string) {
	client, err := newAPIClient(ctx)
	if err != nil {
		logger.Log.Fatalf("Failed to create API client: %v", err)
	}

	station, err := client.GetStation(ctx, id)
	if err != nil {
		if api.IsNotFound(err) {
			logger.Log.Fatalf("Station %s not found", id)
		}

		logger.Log.Fatalf("Failed to fetch station: %v", err)
	}

	if err := output.DisplayStation(station, stationGetFormat); err != nil {
		logger.Log.Fatalf("Failed to render station: %v", err)
	}
}

func init() {
	stationCmd.AddCommand(stationGetCmd)

	stationGetCmd.Flags().StringVarP(&stationGetFormat, "output", "o",
		output.DefaultFormat(output.FormatText, []string{output.FormatText, output.FormatTable, output.FormatJSON}),
		"Output format: text, table, json")
}
