package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/voltride/voltdesk/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show build metadata for this binary",
	Run: func(cmd *cobra.Command, args []string) {
		info := version.Get()

		fmt.Printf("Version:    %s\n", info.Version)
		fmt.Printf("Commit:     %s\n", info.Commit)
		fmt.Printf("Built:      %s\n", info.BuildDate)
		fmt.Printf("Platform:   %s\n", info.Platform)
		fmt.Printf("Go Version: %s\n", info.GoVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
