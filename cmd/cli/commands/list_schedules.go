package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fobe-ops/roster/pkg/core/services"
)

// ListSchedulesCmd creates the listSchedules command
func ListSchedulesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listSchedules",
		Short: "List stored schedules",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Store == nil {
				return fmt.Errorf("no database configured: set ROSTER_DATABASE_URL")
			}

			schedules, err := services.ListSchedules(app.Ctx, app.Store, app.Logger)
			if err != nil {
				return err
			}

			if len(schedules) == 0 {
				fmt.Println("No schedules stored yet")
				return nil
			}

			fmt.Printf("\n🗂  Stored Schedules (%d)\n\n", len(schedules))
			for _, s := range schedules {
				label := s.Label
				if label == "" {
					label = "(unlabelled)"
				}
				fmt.Printf("  %s  %s  start %s, %d week(s)  created %s\n",
					s.ID, label, s.PeriodStart, s.Weeks, s.CreatedAt.Format("2006-01-02 15:04"))
			}
			fmt.Println()
			return nil
		},
	}
}
