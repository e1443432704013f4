package config

// Config represents the application configuration
type Config struct {
	Dataset       DatasetConfig       `toml:"dataset"`
	Database      DatabaseConfig      `toml:"database"`
	Results       ResultsConfig       `toml:"results"`
	Questionnaire QuestionnaireConfig `toml:"questionnaire"`
	Log           LogConfig           `toml:"log"`
	MCP           MCPConfig           `toml:"mcp"`
}

// DatasetConfig points at the scheme dataset
type DatasetConfig struct {
	// Source is a local path or an http(s) URL to the CSV file
	Source string `toml:"source"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// ResultsConfig controls how many results of each tier are shown
type ResultsConfig struct {
	EligibleLimit int `toml:"eligible_limit"`
	PartialLimit  int `toml:"partial_limit"`
}

// QuestionnaireConfig lists the answers needed before results are shown
type QuestionnaireConfig struct {
	Required []string `toml:"required"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level string `toml:"level"`
	JSON  bool   `toml:"json"`
}

// Debug reports whether debug logging is on
func (l LogConfig) Debug() bool {
	return l.Level == "debug"
}

// MCPConfig contains MCP server settings
type MCPConfig struct {
	Enabled   bool   `toml:"enabled"`
	Transport string `toml:"transport"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Source: "~/.local/share/sahayak/updated_data.csv",
		},
		Database: DatabaseConfig{
			Path: "~/.local/share/sahayak/sahayak.db",
		},
		Results: ResultsConfig{
			EligibleLimit: 20,
			PartialLimit:  10,
		},
		Questionnaire: QuestionnaireConfig{
			Required: []string{"age", "state"},
		},
		Log: LogConfig{
			Level: "info",
			JSON:  false,
		},
		MCP: MCPConfig{
			Enabled:   true,
			Transport: "stdio",
		},
	}
}
