package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/unfaiyted/godoc-swagger/internal/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for annotation navigation",
	Long: `Start the Model Context Protocol (MCP) server that lets LLM-powered
coding assistants query annotation blocks, resolve model references to
declaration sites, and list documented endpoints.

The MCP server:
- Scans the project on startup and watches for file changes
- Provides the godoc_blocks, godoc_resolve, and godoc_endpoints tools
- Communicates via stdio (standard MCP transport)

Example:
  godoc-swagger mcp`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	rootDir, err := projectRoot()
	if err != nil {
		return err
	}
	cfg, err := loadProjectConfig(rootDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "godoc-swagger MCP Server\n")
	fmt.Fprintf(os.Stderr, "Project root: %s\n\n", rootDir)

	server, err := mcp.NewServer(ctx, cfg, rootDir)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer server.Close()

	if err := server.Serve(ctx); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}
	return nil
}
