package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/casetrack/internal/calendar"
	"github.com/alexanderramin/casetrack/internal/cli/formatter"
	"github.com/alexanderramin/casetrack/internal/domain"
	"github.com/alexanderramin/casetrack/internal/service"
	"github.com/spf13/cobra"
)

func newReplanCmd(app *App) *cobra.Command {
	var (
		goal  string
		locks []string
		apply bool
		yes   bool
	)

	cmd := &cobra.Command{
		Use:   "replan CASE",
		Short: "Recalculate a case schedule and show how steps move",
		Long: `Recalculate a case's step dates from its template and goal date.

Without --apply the new schedule is only previewed. Locked steps keep their
dates; --lock pins extra steps for this run without storing the lock.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			req := service.ReplanRequest{
				CaseID:      args[0],
				LockStepIDs: locks,
				Trigger:     domain.TriggerManual,
			}
			if goal != "" {
				d, err := calendar.ParseDate(strings.TrimSpace(goal))
				if err != nil {
					return err
				}
				req.GoalDate = &d
				req.Trigger = domain.TriggerGoalChanged
			}

			out := cmd.OutOrStdout()

			if !apply {
				res, err := app.Schedule.Preview(ctx, req)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, formatter.FormatReplan(res.Case, res.Template, res.Plan, res.Diffs, 0, true))
				return nil
			}

			if !yes && app.interactive() {
				preview, err := app.Schedule.Preview(ctx, req)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, formatter.FormatReplan(preview.Case, preview.Template, preview.Plan, preview.Diffs, 0, true))

				ok, err := confirm("Apply this schedule?", describeGoal(req.GoalDate))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, "Cancelled.")
					return nil
				}
			}

			res, err := app.Schedule.Apply(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, formatter.FormatReplan(res.Case, res.Template, res.Plan, res.Diffs, res.Applied, false))
			return nil
		},
	}

	cmd.Flags().StringVar(&goal, "goal", "", "New goal date (YYYY-MM-DD)")
	cmd.Flags().StringArrayVar(&locks, "lock", nil, "Keep a step's current date for this run (repeatable)")
	cmd.Flags().BoolVar(&apply, "apply", false, "Write the new dates")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation when applying")

	return cmd
}

func describeGoal(goal *time.Time) string {
	if goal == nil {
		return "Unlocked step dates will be overwritten."
	}
	return fmt.Sprintf("The goal date moves to %s.", formatter.FormatDate(goal))
}
