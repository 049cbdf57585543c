package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fobe-ops/roster/internal/config"
	"github.com/fobe-ops/roster/pkg/core/rostergen"
	"github.com/fobe-ops/roster/pkg/core/services"
)

// GenerateScheduleCmd creates the generate command
func GenerateScheduleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <request.yaml>",
		Short: "Generate a schedule from a request file",
		Long:  "Run the roster engine over a YAML schedule request and print the resulting shifts, violations and totals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			label, _ := cmd.Flags().GetString("label")
			reroll, _ := cmd.Flags().GetString("reroll")

			app.Logger.Debug("generate command",
				zap.String("request_file", args[0]),
				zap.Bool("dry_run", dryRun))

			request, err := config.LoadRequest(args[0])
			if err != nil {
				return fmt.Errorf("failed to load request: %w", err)
			}

			engineReq, err := request.ToEngineRequest()
			if err != nil {
				return fmt.Errorf("failed to build engine request: %w", err)
			}
			if reroll != "" {
				engineReq.Options.RerollToken = reroll
			}

			var store services.GenerateScheduleStore
			if app.Store != nil {
				store = app.Store
			}

			result, err := services.GenerateSchedule(app.Ctx, store, app.Logger, engineReq, label, dryRun)
			if err != nil {
				return fmt.Errorf("generation failed: %w", err)
			}

			printSchedule(result, dryRun)
			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Generate without persisting")
	cmd.Flags().String("label", "", "Label for the stored schedule")
	cmd.Flags().String("reroll", "", "Override the reroll token to redistribute fairness ties")
	return cmd
}

func printSchedule(result *services.GenerateScheduleResult, dryRun bool) {
	res := result.Result

	fmt.Printf("\n📅 Generated Schedule\n\n")
	switch {
	case result.Persisted:
		fmt.Printf("Status:   ✅ saved (schedule %s)\n", result.ScheduleID)
	case dryRun:
		fmt.Printf("Status:   🧪 dry run (not saved)\n")
	default:
		fmt.Printf("Status:   in memory (no database configured)\n")
	}
	fmt.Printf("Shifts:   %d\n", len(res.Assignments))
	fmt.Printf("Breaches: %d\n\n", len(res.Violations))

	lastDate := ""
	for _, a := range res.Assignments {
		if a.Date != lastDate {
			fmt.Printf("%s\n", a.Date)
			lastDate = a.Date
		}
		marker := " "
		if a.Source == rostergen.SourceAdHoc {
			marker = "+"
		}
		fmt.Printf("  %s %-12s %-12s %s-%s  %s\n",
			marker, a.Location, a.Role, a.Start, a.End, a.EmployeeID)
	}

	if len(res.Violations) > 0 {
		fmt.Printf("\n⚠️  Rule breaches:\n")
		for _, v := range res.Violations {
			fmt.Printf("  • %s [%s] %s\n", v.Date, v.Kind, v.Detail)
		}
	}
	fmt.Println()
}
