package cli

import (
	"github.com/alexanderramin/casetrack/internal/config"
	"github.com/alexanderramin/casetrack/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Templates service.TemplateService
	Cases     service.CaseService
	Schedule  service.ScheduleService
	Calendars service.CalendarService

	Config     config.Config
	ConfigPath string

	// IsInteractive reports whether prompts may be shown. Nil means never.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "casetrack" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "casetrack",
		Short:         "Business-day schedules for template-driven cases",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newTemplateCmd(app),
		newCaseCmd(app),
		newReplanCmd(app),
		newStepCmd(app),
		newCalendarCmd(app),
		newConfigCmd(app),
	)

	return root
}
