package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/va2ai/bvaapi2/internal/mcpserver"
	"github.com/va2ai/bvaapi2/internal/transport/httpapi"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server on stdio",
	Long: `Serve the Model Context Protocol over stdio, exposing the tools
bva_search, bva_case, bva_case_text and bva_analyze to MCP clients.

Example MCP client configuration:

  {
    "mcpServers": {
      "bvaapi": {
        "command": "bvaapi",
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
	p, log, err := buildPipeline()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return mcpserver.NewServer(p, httpapi.Version, log).Serve(ctx)
}
