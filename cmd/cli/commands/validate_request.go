package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fobe-ops/roster/internal/config"
)

// ValidateRequestCmd creates the validate command
func ValidateRequestCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <request.yaml>",
		Short: "Validate a schedule request file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request, err := config.LoadRequest(args[0])
			if err != nil {
				return err
			}
			if _, err := request.ToEngineRequest(); err != nil {
				return err
			}

			fmt.Printf("✅ %s is valid\n", args[0])
			fmt.Printf("   period:    %s, %d week(s)\n", request.Period.StartDate, request.Period.Weeks)
			fmt.Printf("   employees: %d\n", len(request.Employees))
			fmt.Printf("   bookings:  %d\n", len(request.AdHocBookings))
			return nil
		},
	}
}
