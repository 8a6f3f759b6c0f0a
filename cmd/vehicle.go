package cmd

import (
	"github.com/spf13/cobra"
)

var vehicleCmd = &cobra.Command{
	Use:     "vehicle",
	Aliases: []string{"vehicles", "v"},
	Short:   "Manage the vehicle fleet",
	Long:    "List and reassign the scooters, e-bikes, and cars of the VoltRide fleet.",
}

func init() {
	rootCmd.AddCommand(vehicleCmd)
}
