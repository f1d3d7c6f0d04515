package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/casetrack/internal/calendar"
	"github.com/alexanderramin/casetrack/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// casetrackHuhTheme returns a huh theme matching the formatter palette.
func casetrackHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// validateDate accepts a YYYY-MM-DD date string.
func validateDate(s string) error {
	if _, err := calendar.ParseDate(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

func validateRequired(title string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", title)
		}
		return nil
	}
}

// newCaseForm collects the case fields that were not given as flags.
func newCaseForm(templateOptions []huh.Option[string], templateRef, title, goal *string) *huh.Form {
	var fields []huh.Field
	if *templateRef == "" {
		fields = append(fields, huh.NewSelect[string]().
			Title("Template").
			Options(templateOptions...).
			Value(templateRef))
	}
	if *title == "" {
		fields = append(fields, huh.NewInput().
			Title("Case title").
			Placeholder("Jane Doe onboarding").
			Value(title).
			Validate(validateRequired("title")))
	}
	if *goal == "" {
		fields = append(fields, huh.NewInput().
			Title("Goal date (YYYY-MM-DD)").
			Placeholder("2026-01-30").
			Value(goal).
			Validate(validateDate))
	}
	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(casetrackHuhTheme()).WithShowHelp(false)
}

// confirm asks a yes/no question on the terminal.
func confirm(title, description string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).WithTheme(casetrackHuhTheme()).WithShowHelp(false).Run()
	return ok, err
}
