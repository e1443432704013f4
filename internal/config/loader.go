package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/vijay-prabhu/scheme-sahayak/internal/eligibility"
)

// Environment variables that override file settings
const (
	EnvDataset  = "SAHAYAK_DATASET"
	EnvDBPath   = "SAHAYAK_DB_PATH"
	EnvLogLevel = "SAHAYAK_LOG_LEVEL"
)

// DefaultPath returns the default config file location
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "sahayak", "config.toml"), nil
}

// LoadDotEnv loads KEY=VALUE pairs from the given files into the environment.
// Missing files are skipped and variables already set are left alone.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("failed to stat %s: %w", p, err)
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads and parses the configuration file.
// A missing file is not an error: defaults are used instead.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		expandedPath, err := expandPath(path)
		if err != nil {
			return nil, fmt.Errorf("failed to expand config path: %w", err)
		}

		data, err := os.ReadFile(expandedPath)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case os.IsNotExist(err):
			// run with defaults
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.expandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Marshal renders the config as TOML
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvDataset)); v != "" {
		c.Dataset.Source = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDBPath)); v != "" {
		c.Database.Path = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
}

// expandPath expands ~ to home directory
func expandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}

// expandPaths expands ~ in all path fields
func (c *Config) expandPaths() error {
	var err error

	if !c.Dataset.IsRemote() {
		c.Dataset.Source, err = expandPath(c.Dataset.Source)
		if err != nil {
			return err
		}
	}

	c.Database.Path, err = expandPath(c.Database.Path)
	if err != nil {
		return err
	}

	return nil
}

// IsRemote reports whether the dataset is fetched over HTTP
func (d DatasetConfig) IsRemote() bool {
	lower := strings.ToLower(d.Source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// RequiredFields resolves the questionnaire's required field names
func (c *Config) RequiredFields() []eligibility.Field {
	fields := make([]eligibility.Field, 0, len(c.Questionnaire.Required))
	for _, name := range c.Questionnaire.Required {
		if f, ok := eligibility.ParseField(name); ok {
			fields = append(fields, f)
		}
	}
	return fields
}

// Limits returns the display caps as the pipeline expects them
func (c *Config) Limits() eligibility.Limits {
	return eligibility.Limits{
		Eligible: c.Results.EligibleLimit,
		Partial:  c.Results.PartialLimit,
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Dataset.Source) == "" {
		errs = append(errs, errors.New("dataset.source is required"))
	}

	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is required"))
	}

	if c.Results.EligibleLimit < 0 {
		errs = append(errs, errors.New("results.eligible_limit must not be negative"))
	}
	if c.Results.PartialLimit < 0 {
		errs = append(errs, errors.New("results.partial_limit must not be negative"))
	}

	for _, name := range c.Questionnaire.Required {
		if _, ok := eligibility.ParseField(name); !ok {
			errs = append(errs, fmt.Errorf("questionnaire.required has unknown field '%s'", name))
		}
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Log.Level] {
		errs = append(errs, fmt.Errorf("log.level must be one of debug, info, warn, error, got '%s'", c.Log.Level))
	}

	if c.MCP.Transport != "stdio" {
		errs = append(errs, fmt.Errorf("mcp.transport must be 'stdio', got '%s'", c.MCP.Transport))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// EnsureDirectories creates necessary directories for the database and a local dataset
func (c *Config) EnsureDirectories() error {
	dirs := []string{filepath.Dir(c.Database.Path)}
	if !c.Dataset.IsRemote() {
		dirs = append(dirs, filepath.Dir(c.Dataset.Source))
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
