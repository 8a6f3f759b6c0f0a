package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/voltride/voltdesk/internal/api"
	"github.com/voltride/voltdesk/internal/logger"
	"github.com/voltride/voltdesk/internal/mutation"
	"github.com/voltride/voltdesk/internal/output"
)

var (
	staffCreateInput api.StaffInput
	staffCreateKey   string
)

var staffCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a staff account",
	Long: `Create a new staff account assigned to a station. Input is validated
locally first, so an invalid payload never reaches the backend. The request
carries an idempotency key; after a network timeout, verify the staff list and
rerun with the printed key to resubmit the same creation.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runStaffCreate(cmd.Context())
	},
}

func runStaffCreate(ctx context.Context) {
	client, err := newAPIClient(ctx)
	if err != nil {
		logger.Log.Fatalf("Failed to create API client: %v", err)
	}

	key := staffCreateKey
	if key == "" {
		key = api.NewIdempotencyKey()
	}

	member, err := client.CreateStaff(ctx, staffCreateInput, key)
	if err != nil {
		switch {
		case api.IsValidation(err):
			logger.Log.Fatalf("Invalid input: %v", err)
		case api.IsConflict(err):
			logger.Log.Fatalf("An account with this email already exists: %v", err)
		case api.IsAmbiguous(err):
			logger.Log.Fatalf("Creation outcome unknown: %v. %s Rerun with --idempotency-key %s to resubmit the same creation.",
				err, mutation.VerifyHint, key)
		default:
			logger.Log.Fatalf("Failed to create staff account: %v", err)
		}
	}

	logger.Log.Infof("Created staff account %s for %s", member.ID, member.FullName)

	if err := output.DisplayStaffMember(member, output.FormatText); err != nil {
		logger.Log.Fatalf("Failed to render staff member: %v", err)
	}
}

func init() {
	staffCmd.AddCommand(staffCreateCmd)

	staffCreateCmd.Flags().StringVar(&staffCreateInput.FullName, "name", "", "Full name")
	staffCreateCmd.Flags().StringVar(&staffCreateInput.Email, "email", "", "Email address")
	staffCreateCmd.Flags().StringVar(&staffCreateInput.Phone, "phone", "", "Phone number")
	staffCreateCmd.Flags().StringVar(&staffCreateInput.Role, "role", "", "Role: manager, technician, support")
	staffCreateCmd.Flags().StringVar(&staffCreateInput.StationID, "station", "", "Station the account is assigned to")
	staffCreateCmd.Flags().StringVar(&staffCreateKey, "idempotency-key", "", "Reuse a previous attempt's idempotency key after a timeout")

	_ = staffCreateCmd.MarkFlagRequired("name")
	_ = staffCreateCmd.MarkFlagRequired("email")
	_ = staffCreateCmd.MarkFlagRequired("role")
	_ = staffCreateCmd.MarkFlagRequired("station")
}
