package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/alexanderramin/casetrack/internal/config"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or initialise the configuration file",
	}

	cmd.AddCommand(
		newConfigInitCmd(app),
		newConfigShowCmd(app),
	)

	return cmd
}

func newConfigInitCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.ConfigPath == "" {
				return errors.New("no config path set")
			}
			if _, err := os.Stat(app.ConfigPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", app.ConfigPath)
			}
			if err := config.Write(app.ConfigPath, app.Config); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", app.ConfigPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := toml.Marshal(app.Config)
			if err != nil {
				return err
			}
			if app.ConfigPath != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", app.ConfigPath)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(content))
			return nil
		},
	}
}
