package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/voltride/voltdesk/internal/api"
	"github.com/voltride/voltdesk/internal/logger"
	"github.com/voltride/voltdesk/internal/mutation"
	"github.com/voltride/voltdesk/internal/output"
)

var vehicleAssignCmd = &cobra.Command{
	Use:   "assign <vehicle-id> <station-id>",
	Short: "Reassign a vehicle to another station",
	Long: `Move a vehicle to a different station. The backend rejects the move when
the vehicle is currently rented or the target station is full.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		runVehicleAssign(cmd.Context(), args[0], args[1])
	},
}

func runVehicleAssign(ctx context.Context, vehicleID, stationID string) {
	client, err := newAPIClient(ctx)
	if err != nil {
		logger.Log.Fatalf("Failed to create API client: %v", err)
	}

	spin := output.NewSpinner("Assigning vehicle " + vehicleID)
	spin.Start()

	vehicle, err := client.AssignVehicle(ctx, vehicleID, stationID)
	if err != nil {
		spin.Fail("Assignment failed")

		switch {
		case api.IsNotFound(err):
			logger.Log.Fatalf("Vehicle or station not found: %v", err)
		case api.IsConflict(err):
			logger.Log.Fatalf("Vehicle cannot be moved right now: %v", err)
		case api.IsAmbiguous(err):
			logger.Log.Fatalf("Assignment outcome unknown: %v. %s", err, mutation.VerifyHint)
		default:
			logger.Log.Fatalf("Failed to assign vehicle: %v", err)
		}
	}

	spin.Success("Vehicle assigned")

	logger.Log.Infof("Vehicle %s is now at %s", vehicle.Plate, vehicle.StationName)

	if err := output.DisplayVehicle(vehicle, output.FormatText); err != nil {
		logger.Log.Fatalf("Failed to render vehicle: %v", err)
	}
}

func init() {
	vehicleCmd.AddCommand(vehicleAssignCmd)
}
