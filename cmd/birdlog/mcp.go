// ABOUTME: MCP server command implementation for birdlog.
// ABOUTME: Starts the MCP server in stdio mode so agents can record and query sightings.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mcppkg "github.com/2389-research/birdlog/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server (stdio mode)",
	Long: `Start the Model Context Protocol server for AI agent integration.

The server speaks over stdio and exposes tools to list, add, update,
delete, search, and locate bird sightings in the journal.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	server, err := mcppkg.NewServer(globalStore,
		mcppkg.WithDefaultLocation(globalConfig.DefaultLocation()),
		mcppkg.WithVersion(version),
	)
	if err != nil {
		return err
	}

	return server.Serve(ctx)
}
