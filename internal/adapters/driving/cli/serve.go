package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matcha-labs/matcha-mcp/internal/adapters/driving/mcp"
	"github.com/matcha-labs/matcha-mcp/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants.

Use --port to start an HTTP server instead, which enables:
  - Testing with MCP Inspector web UI
  - Remote access via HTTP

Examples:
  # Stdio mode (default, for Claude Desktop)
  matcha serve

  # HTTP mode (for MCP Inspector, remote access)
  matcha serve --port 8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "matcha": {
        "command": "/path/to/matcha",
        "args": ["serve"]
      }
    }
  }`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	ports := &mcp.Ports{
		Profile:   profileService,
		Request:   requestService,
		Matching:  matchingService,
		Interest:  interestService,
		Chat:      chatService,
		Deal:      dealService,
		Insight:   insightService,
		Contract:  contractService,
		Analytics: analyticsService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	// Expire stale chat windows and deals in the background while serving.
	sweeper.Start(cmd.Context())
	defer sweeper.Stop()
	logger.Debug("expiry sweeper started")

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
