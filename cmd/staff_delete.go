package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/voltride/voltdesk/internal/api"
	"github.com/voltride/voltdesk/internal/logger"
	"github.com/voltride/voltdesk/internal/mutation"
)

var staffDeleteYes bool

var staffDeleteCmd = &cobra.Command{
	Use:     "delete <staff-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a staff account",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runStaffDelete(cmd.Context(), args[0])
	},
}

func runStaffDelete(ctx context.Context, id string) {
	if !staffDeleteYes && !confirm(fmt.Sprintf("Delete staff account %s?", id)) {
		logger.Log.Info("Aborted")

		return
	}

	client, err := newAPIClient(ctx)
	if err != nil {
		logger.Log.Fatalf("Failed to create API client: %v", err)
	}

	if err := client.DeleteStaff(ctx, id); err != nil {
		switch {
		case api.IsNotFound(err):
			logger.Log.Fatalf("Staff account %s not found", id)
		case api.IsAmbiguous(err):
			logger.Log.Fatalf("Deletion outcome unknown: %v. %s", err, mutation.VerifyHint)
		default:
			logger.Log.Fatalf("Failed to delete staff account: %v", err)
		}
	}

	logger.Log.Infof("Deleted staff account %s", id)
}

func confirm(prompt string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N] ", prompt)

	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	answer = strings.ToLower(strings.TrimSpace(answer))

	return answer == "y" || answer == "yes"
}

func init() {
	staffCmd.AddCommand(staffDeleteCmd)

	staffDeleteCmd.Flags().BoolVarP(&staffDeleteYes, "yes", "y", false, "Skip the confirmation prompt")
}
