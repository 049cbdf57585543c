package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fobe-ops/roster/internal/config"
	"github.com/fobe-ops/roster/pkg/core/rostergen"
)

// CalendarCmd creates the calendar command
func CalendarCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "calendar <request.yaml>",
		Short: "Preview the resolved open/closed calendar for a request",
		Long:  "Resolve the season rules and weekday set for the request's period and show which days each location opens, without generating a schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request, err := config.LoadRequest(args[0])
			if err != nil {
				return err
			}
			engineReq, err := request.ToEngineRequest()
			if err != nil {
				return err
			}

			days, err := rostergen.ResolveOpenDays(engineReq)
			if err != nil {
				return err
			}

			week := -1
			for _, d := range days {
				if d.Week != week {
					week = d.Week
					fmt.Printf("\nWeek %d\n", week+1)
				}
				status := "closed"
				if d.MainOpen && d.BeachOpen {
					status = "open (Greystones + Beach Shop)"
				} else if d.MainOpen {
					status = "open (Greystones)"
				}
				fmt.Printf("  %s  %s\n", d.Date, status)
			}
			fmt.Println()
			return nil
		},
	}
}
