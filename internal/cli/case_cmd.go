package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/casetrack/internal/calendar"
	"github.com/alexanderramin/casetrack/internal/cli/formatter"
	"github.com/alexanderramin/casetrack/internal/domain"
	"github.com/alexanderramin/casetrack/internal/service"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newCaseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "case",
		Short: "Create and inspect cases",
	}

	cmd.AddCommand(
		newCaseNewCmd(app),
		newCaseListCmd(app),
		newCaseShowCmd(app),
		newCaseDeleteCmd(app),
	)

	return cmd
}

func newCaseNewCmd(app *App) *cobra.Command {
	var templateRef, title, goal, calendarID string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a case from an active template",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if (templateRef == "" || title == "" || goal == "") && app.interactive() {
				options, err := activeTemplateOptions(cmd, app)
				if err != nil {
					return err
				}
				if err := newCaseForm(options, &templateRef, &title, &goal).Run(); err != nil {
					return err
				}
			}
			if templateRef == "" || title == "" || goal == "" {
				return fmt.Errorf("--template, --title and --goal are required")
			}

			goalDate, err := calendar.ParseDate(goal)
			if err != nil {
				return err
			}
			res, err := app.Cases.Create(ctx, service.CreateCaseRequest{
				TemplateRef: templateRef,
				Title:       title,
				GoalDate:    goalDate,
				CalendarID:  calendarID,
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSchedule(res.Case, res.Template, res.Instances, res.Plan))
			return nil
		},
	}

	cmd.Flags().StringVar(&templateRef, "template", "", "Template name or ID")
	cmd.Flags().StringVar(&title, "title", "", "Case title")
	cmd.Flags().StringVar(&goal, "goal", "", "Goal date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&calendarID, "calendar", "", "Calendar ID (default from config)")

	return cmd
}

func activeTemplateOptions(cmd *cobra.Command, app *App) ([]huh.Option[string], error) {
	templates, err := app.Templates.List(cmd.Context())
	if err != nil {
		return nil, err
	}
	var options []huh.Option[string]
	for _, t := range templates {
		if t.Status != domain.TemplateActive {
			continue
		}
		options = append(options, huh.NewOption(t.Name+" v"+strconv.Itoa(t.Version), t.ID))
	}
	if len(options) == 0 {
		return nil, fmt.Errorf("no active templates; import one with 'casetrack template import --activate'")
	}
	return options, nil
}

func newCaseListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cases",
		RunE: func(cmd *cobra.Command, args []string) error {
			cases, err := app.Cases.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(cases) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No cases found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCaseList(cases))
			return nil
		},
	}
}

func newCaseShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show CASE",
		Short: "Show a case's schedule and critical path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := app.Schedule.View(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSchedule(view.Case, view.Template, view.Instances, view.Plan))
			return nil
		},
	}
}

func newCaseDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete CASE",
		Short: "Delete a case and its steps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Cases.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !yes && app.interactive() {
				ok, err := confirm(fmt.Sprintf("Delete case %q?", c.Title), "Its step dates are removed too.")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}
			if err := app.Cases.Delete(cmd.Context(), c.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted case %s\n", formatter.Bold(c.Title))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}
