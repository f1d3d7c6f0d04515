package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

type Config struct {
	Database  DatabaseConfig  `toml:"database"`
	Templates TemplatesConfig `toml:"templates"`
	Calendar  CalendarConfig  `toml:"calendar"`
	Logging   LoggingConfig   `toml:"logging"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type TemplatesConfig struct {
	Dir string `toml:"dir"`
}

type CalendarConfig struct {
	// Default is the calendar id new cases use when none is given.
	Default string `toml:"default"`
}

type LoggingConfig struct {
	Level string `toml:"level"` // debug | info | warn | error
}

// Default returns the configuration used when no file is present. Paths live
// under baseDir, normally ~/.casetrack.
func Default(baseDir string) Config {
	return Config{
		Database: DatabaseConfig{
			Path: filepath.Join(baseDir, "casetrack.db"),
		},
		Templates: TemplatesConfig{
			Dir: filepath.Join(baseDir, "templates"),
		},
		Calendar: CalendarConfig{
			Default: "none",
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// DefaultPath is $CASETRACK_CONFIG, or config.toml under baseDir.
func DefaultPath(baseDir string) string {
	if p := strings.TrimSpace(os.Getenv("CASETRACK_CONFIG")); p != "" {
		return p
	}
	return filepath.Join(baseDir, "config.toml")
}

// Load reads path over defaults. A missing or empty file yields defaults.
func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// ApplyEnv overrides file values with CASETRACK_DB and CASETRACK_TEMPLATES.
func (c Config) ApplyEnv() Config {
	if p := strings.TrimSpace(os.Getenv("CASETRACK_DB")); p != "" {
		c.Database.Path = p
	}
	if d := strings.TrimSpace(os.Getenv("CASETRACK_TEMPLATES")); d != "" {
		c.Templates.Dir = d
	}
	return c
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return errors.New("database path is required")
	}
	if strings.TrimSpace(c.Calendar.Default) == "" {
		return errors.New("calendar.default is required")
	}
	switch strings.TrimSpace(strings.ToLower(c.Logging.Level)) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}
	return nil
}

func EnsureConfigDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// Write stores cfg as TOML at path, creating the parent directory.
func Write(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	content, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode toml: %w", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
