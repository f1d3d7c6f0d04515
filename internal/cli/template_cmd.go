package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/casetrack/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newTemplateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Import and manage step templates",
	}

	cmd.AddCommand(
		newTemplateImportCmd(app),
		newTemplateValidateCmd(app),
		newTemplateListCmd(app),
		newTemplateShowCmd(app),
		newTemplateActivateCmd(app),
	)

	return cmd
}

// resolveTemplatePath finds a template file as given, then under the
// configured templates directory.
func resolveTemplatePath(app *App, path string) string {
	if _, err := os.Stat(path); err == nil || filepath.IsAbs(path) || app.Config.Templates.Dir == "" {
		return path
	}
	candidate := filepath.Join(app.Config.Templates.Dir, path)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return path
}

func newTemplateImportCmd(app *App) *cobra.Command {
	var activate bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import a JSON or YAML template as a new draft version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := app.Templates.Import(ctx, resolveTemplatePath(app, args[0]))
			if err != nil {
				return err
			}
			if activate {
				if t, err = app.Templates.Activate(ctx, t.ID); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %s v%d (%d steps) %s\n",
				formatter.Bold(t.Name), t.Version, len(t.Steps), formatter.StatusBadge(t.Status))
			fmt.Fprintf(out, "  %s\n", formatter.Dim(t.ID))
			return nil
		},
	}

	cmd.Flags().BoolVar(&activate, "activate", false, "Activate the imported version immediately")

	return cmd
}

func newTemplateValidateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE...",
		Short: "Check template files without importing them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, arg := range args {
				path := resolveTemplatePath(app, arg)
				errs := app.Templates.ValidateFile(path)
				if len(errs) > 0 {
					failed++
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatValidationErrors(path, errs))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d template(s) invalid", failed, len(args))
			}
			return nil
		},
	}
}

func newTemplateListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			templates, err := app.Templates.List(cmd.Context())
			if err != nil {
				return err
			}

			if len(templates) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No templates found.")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTemplateList(templates))
			return nil
		},
	}
}

func newTemplateShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME|ID",
		Short: "Show a template's steps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.Templates.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTemplateShow(t))
			return nil
		},
	}
}

func newTemplateActivateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "activate NAME|ID",
		Short: "Make a template version available to new cases",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.Templates.Activate(cmd.Context(), strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s v%d is now %s\n",
				formatter.Bold(t.Name), t.Version, formatter.StatusBadge(t.Status))
			return nil
		},
	}
}
