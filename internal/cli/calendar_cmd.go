package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/casetrack/internal/calendar"
	"github.com/alexanderramin/casetrack/internal/cli/formatter"
	"github.com/alexanderramin/casetrack/internal/domain"
	"github.com/spf13/cobra"
)

func newCalendarCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Manage holiday calendars and business-day math",
	}

	cmd.AddCommand(
		newCalendarImportCmd(app),
		newCalendarListCmd(app),
		newCalendarCheckCmd(app),
		newCalendarAddCmd(app),
		newCalendarBetweenCmd(app),
		newCalendarHolidayCmd(app),
	)

	return cmd
}

func (a *App) calendarOrDefault(id string) string {
	if id = strings.TrimSpace(id); id != "" {
		return id
	}
	return a.Config.Calendar.Default
}

func newCalendarImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Load a YAML holiday file, replacing that calendar's holidays",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sum, err := app.Calendars.Import(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported calendar %s with %d holiday(s)\n",
				formatter.Bold(sum.Calendar.ID), sum.HolidayCount)
			return nil
		},
	}
}

func newCalendarListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List calendars",
		RunE: func(cmd *cobra.Command, args []string) error {
			sums, err := app.Calendars.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(sums) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No calendars found.")
				return nil
			}

			rows := make([]formatter.CalendarRow, 0, len(sums))
			for _, s := range sums {
				rows = append(rows, formatter.CalendarRow{
					Calendar:     s.Calendar,
					HolidayCount: s.HolidayCount,
					IsDefault:    s.Calendar.ID == app.Config.Calendar.Default,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCalendarList(rows))
			return nil
		},
	}
}

func newCalendarCheckCmd(app *App) *cobra.Command {
	var calendarID string

	cmd := &cobra.Command{
		Use:   "check DATE",
		Short: "Report whether a date is a business day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := calendar.ParseDate(args[0])
			if err != nil {
				return err
			}
			id := app.calendarOrDefault(calendarID)
			ok, err := app.Calendars.IsBusinessDay(cmd.Context(), id, d)
			if err != nil {
				return err
			}
			verdict := formatter.StyleGreen.Render("business day")
			if !ok {
				verdict = formatter.StyleRed.Render("not a business day")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s is a %s in %s\n",
				d.Weekday(), formatter.FormatDate(&d), verdict, id)
			return nil
		},
	}

	cmd.Flags().StringVar(&calendarID, "calendar", "", "Calendar ID (default from config)")

	return cmd
}

func newCalendarAddCmd(app *App) *cobra.Command {
	var calendarID string

	cmd := &cobra.Command{
		Use:   "add DATE N",
		Short: "Move N business days from DATE (pass -- before a negative N)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := calendar.ParseDate(args[0])
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid business day count %q", args[1])
			}
			got, err := app.Calendars.AddBusinessDays(cmd.Context(), app.calendarOrDefault(calendarID), d, n)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDate(&got))
			return nil
		},
	}

	cmd.Flags().StringVar(&calendarID, "calendar", "", "Calendar ID (default from config)")

	return cmd
}

func newCalendarBetweenCmd(app *App) *cobra.Command {
	var calendarID string

	cmd := &cobra.Command{
		Use:   "between FROM TO",
		Short: "Count business days after FROM up to and including TO",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := calendar.ParseDate(args[0])
			if err != nil {
				return err
			}
			to, err := calendar.ParseDate(args[1])
			if err != nil {
				return err
			}
			n, err := app.Calendars.BusinessDaysBetween(cmd.Context(), app.calendarOrDefault(calendarID), from, to)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d business day(s)\n", n)
			return nil
		},
	}

	cmd.Flags().StringVar(&calendarID, "calendar", "", "Calendar ID (default from config)")

	return cmd
}

func newCalendarHolidayCmd(app *App) *cobra.Command {
	var calendarID string

	cmd := &cobra.Command{
		Use:   "holiday DATE NAME",
		Short: "Add a single holiday to a calendar",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := calendar.ParseDate(args[0])
			if err != nil {
				return err
			}
			h := domain.Holiday{
				CalendarID: app.calendarOrDefault(calendarID),
				Date:       d,
				Name:       strings.Join(args[1:], " "),
			}
			if err := app.Calendars.AddHoliday(cmd.Context(), h); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s) to %s\n",
				h.Name, formatter.FormatDate(&d), formatter.Bold(h.CalendarID))
			return nil
		},
	}

	cmd.Flags().StringVar(&calendarID, "calendar", "", "Calendar ID (default from config)")

	return cmd
}
