package cmd

import (
	"github.com/spf13/cobra"
)

var stationCmd = &cobra.Command{
	Use:     "station",
	Aliases: []string{"stations", "st"},
	Short:   "Manage rental stations",
	Long:    "List, inspect, and reconcile the rental stations of the VoltRide network.",
}

func init() {
	rootCmd.AddCommand(stationCmd)
}
