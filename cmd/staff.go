package cmd

import (
	"github.com/spf13/cobra"
)

var staffCmd = &cobra.Command{
	Use:   "staff",
	Short: "Manage staff accounts",
	Long:  "List, create, and remove the staff accounts assigned to rental stations.",
}

func init() {
	rootCmd.AddCommand(staffCmd)
}
