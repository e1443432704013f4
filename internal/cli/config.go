package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Long: `Display the effective configuration: the config file merged with
defaults, environment overrides and command line flags.`,
	RunE: runConfigShow,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Dir(configPath)
	dataDir := filepath.Join(home, ".local", "share", "sahayak")

	// Create directories
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("Config file already exists at %s\n", configPath)
		fmt.Println("Use 'sahayak config show' to view current configuration")
		return nil
	}

	// Write default config
	if err := os.WriteFile(configPath, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Created config file at %s\n", configPath)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Printf("  1. Download the scheme dataset CSV to %s/updated_data.csv\n", dataDir)
	fmt.Println("     (or set [dataset] source to a URL)")
	fmt.Println("  2. Run 'sahayak check' to find schemes for you")

	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := cfg.Marshal()
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Printf("# No config file at %s; showing defaults.\n", configPath)
		fmt.Println("# Run 'sahayak config init' to create one.")
	} else {
		fmt.Printf("# Config file: %s\n", configPath)
	}
	fmt.Println()
	fmt.Println(string(data))
	return nil
}

const defaultConfig = `# Scheme Sahayak Configuration

[dataset]
# Local CSV path or an http(s) URL
# Override with SAHAYAK_DATASET or --dataset
source = "~/.local/share/sahayak/updated_data.csv"

[database]
# Saved schemes are kept here (override with SAHAYAK_DB_PATH)
path = "~/.local/share/sahayak/sahayak.db"

[results]
eligible_limit = 20  # eligible schemes shown, 0 for all
partial_limit = 10   # partial matches shown, 0 for all

[questionnaire]
# Answers needed before results are shown
required = ["age", "state"]

[log]
level = "info"  # debug, info, warn, error (override with SAHAYAK_LOG_LEVEL)
json = false

[mcp]
enabled = true
transport = "stdio"
`
