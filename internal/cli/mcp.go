package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/scheme-sahayak/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server (stdio transport)",
	Long: `Start the MCP (Model Context Protocol) server using stdio transport.

This allows AI assistants like Claude Desktop to check scheme eligibility
and manage your saved schemes.

Add to Claude Desktop config (~/Library/Application Support/Claude/claude_desktop_config.json):

{
  "mcpServers": {
    "sahayak": {
      "command": "/path/to/sahayak",
      "args": ["mcp"]
    }
  }
}`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Check if MCP is enabled
	if !cfg.MCP.Enabled {
		return fmt.Errorf("MCP server is disabled in config")
	}

	// Logs go to stderr, stdout carries protocol frames
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	// Handle interrupt
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		<-sigCh
		cancel()
	}()

	// Tools wait for the dataset on first use
	catalog, err := startCatalog(ctx, cfg, log)
	if err != nil {
		return err
	}

	// Open database
	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	// Create MCP server
	server := mcp.New(catalog, db, cfg, log)
	server.SetVersion(version)

	// Run server
	return server.Start(ctx)
}
