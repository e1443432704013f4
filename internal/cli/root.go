package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vijay-prabhu/scheme-sahayak/internal/config"
	"github.com/vijay-prabhu/scheme-sahayak/internal/database"
	"github.com/vijay-prabhu/scheme-sahayak/internal/logger"
	"github.com/vijay-prabhu/scheme-sahayak/internal/scheme"
)

var (
	// Version info set from main
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"

	// Global flags
	configPath  string
	outputFmt   string
	datasetFlag string
	debugFlag   bool
	logJSONFlag bool
)

// SetVersionInfo sets version information from build flags
func SetVersionInfo(v, c, b string) {
	version = v
	commit = c
	buildTime = b
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "sahayak",
	Short: "Find government schemes you may be eligible for",
	Long: `sahayak screens Indian government welfare schemes against your
answers to a few questions and shows the ones you are likely eligible for.

It provides:
  - A guided questionnaire (age, state, income, category, occupation, gender)
  - Ranked results split into eligible and partial matches
  - Full scheme details with the reasons behind each match score
  - Saved schemes that persist between sessions
  - MCP server for AI assistant integration`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"config file (default: ~/.config/sahayak/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "table",
		"output format (table, json)")
	rootCmd.PersistentFlags().StringVar(&datasetFlag, "dataset", "",
		"scheme dataset path or URL (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&logJSONFlag, "log-json", false,
		"write logs as JSON")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading .env: %v\n", err)
		os.Exit(1)
	}

	if configPath == "" {
		path, err := config.DefaultPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}
		configPath = path
	}
}

// loadConfig loads the config file and applies command line overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if datasetFlag != "" {
		cfg.Dataset.Source = datasetFlag
	}
	if debugFlag {
		cfg.Log.Level = "debug"
	}
	if logJSONFlag {
		cfg.Log.JSON = true
	}

	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	log, err := logger.New(cfg.Log.JSON, cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return log, nil
}

// startCatalog begins loading the dataset in the background
func startCatalog(ctx context.Context, cfg *config.Config, log *zap.Logger) (*scheme.Catalog, error) {
	src, err := scheme.NewSource(cfg.Dataset.Source)
	if err != nil {
		return nil, fmt.Errorf("invalid dataset source: %w", err)
	}
	return scheme.LoadAsync(ctx, src, log), nil
}

// loadCatalog loads the dataset and waits for it, showing progress on a terminal.
// A failed load leaves the catalog empty rather than returning an error.
func loadCatalog(ctx context.Context, cfg *config.Config, log *zap.Logger) (*scheme.Catalog, error) {
	catalog, err := startCatalog(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	if _, err := NewTerminal().WaitForCatalog(ctx, catalog); err != nil {
		return nil, fmt.Errorf("failed waiting for schemes: %w", err)
	}
	if catalog.State() == scheme.StateFailed {
		fmt.Fprintln(os.Stderr, "Could not load the scheme dataset; continuing with no schemes.")
	}
	return catalog, nil
}

// openStore opens the saved schemes database, creating its directory first
func openStore(cfg *config.Config) (*database.DB, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// versionCmd shows version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sahayak %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", buildTime)
	},
}
