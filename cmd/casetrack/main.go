package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alexanderramin/casetrack/internal/cli"
	"github.com/alexanderramin/casetrack/internal/config"
	"github.com/alexanderramin/casetrack/internal/db"
	"github.com/alexanderramin/casetrack/internal/repository"
	"github.com/alexanderramin/casetrack/internal/service"
	charmLog "github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("finding home directory: %w", err)
	}
	baseDir := filepath.Join(home, ".casetrack")

	configPath := config.DefaultPath(baseDir)
	cfg, err := config.Load(configPath, config.Default(baseDir))
	if err != nil {
		return fmt.Errorf("loading config %s: %w", configPath, err)
	}
	cfg = cfg.ApplyEnv()

	logger, err := newLogger(os.Stderr, cfg.Logging)
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()
	logger.Debug("database opened", "path", cfg.Database.Path)

	// Wire repositories
	templateRepo := repository.NewSQLiteTemplateRepo(database)
	caseRepo := repository.NewSQLiteCaseRepo(database)
	stepRepo := repository.NewSQLiteStepInstanceRepo(database)
	calendarRepo := repository.NewSQLiteCalendarRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)
	observer := service.NewLogUseCaseObserver(logger)

	// Wire services
	templateSvc := service.NewTemplateService(templateRepo, uow, observer)
	calendarSvc := service.NewCalendarService(calendarRepo, uow, observer)

	if err := calendarSvc.Ensure(context.Background(), cfg.Calendar.Default, cfg.Calendar.Default); err != nil {
		return fmt.Errorf("preparing default calendar: %w", err)
	}

	app := &cli.App{
		Templates:  templateSvc,
		Cases:      service.NewCaseService(templateSvc, caseRepo, calendarRepo, uow, cfg.Calendar.Default, observer),
		Schedule:   service.NewScheduleService(templateRepo, caseRepo, stepRepo, calendarRepo, uow, observer),
		Calendars:  calendarSvc,
		Config:     cfg,
		ConfigPath: configPath,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

// newLogger writes styled text to a terminal and logfmt otherwise.
func newLogger(w *os.File, cfg config.LoggingConfig) (*charmLog.Logger, error) {
	level, err := charmLog.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse logging level %q: %w", cfg.Level, err)
	}

	formatter := charmLog.LogfmtFormatter
	if isatty.IsTerminal(w.Fd()) {
		formatter = charmLog.TextFormatter
	}

	return charmLog.NewWithOptions(w, charmLog.Options{
		Level:           level,
		Prefix:          "casetrack",
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       formatter,
	}), nil
}
