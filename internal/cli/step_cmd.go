package cli

import (
	"fmt"

	"github.com/alexanderramin/casetrack/internal/cli/formatter"
	"github.com/alexanderramin/casetrack/internal/domain"
	"github.com/spf13/cobra"
)

func newStepCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "step",
		Short: "Pin or release individual step dates",
	}

	cmd.AddCommand(
		newStepLockCmd(app),
		newStepUnlockCmd(app),
	)

	return cmd
}

func newStepLockCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "lock CASE STEP",
		Short: "Keep a step's due date fixed across replans",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := app.Schedule.Lock(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			printStepState(cmd, inst)
			return nil
		},
	}
}

func newStepUnlockCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unlock CASE STEP",
		Short: "Let a step move with the next replan",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := app.Schedule.Unlock(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			printStepState(cmd, inst)
			return nil
		},
	}
}

func printStepState(cmd *cobra.Command, inst *domain.StepInstance) {
	state := "unlocked"
	if inst.Locked {
		state = "locked"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Step %s %s (due %s)\n",
		formatter.Bold(inst.DefinitionID), state, formatter.FormatDate(inst.DueDate))
}
