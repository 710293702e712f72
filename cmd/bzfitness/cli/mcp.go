package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	bmcp "github.com/retshidi-radebe/bzfitness/internal/mcp"
)

func newMCPCmd() *cobra.Command {
	var (
		transport string
		port      int
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP server for AI assistants",
		Long: `Start a Model Context Protocol (MCP) server that exposes read-only gym
data (members, attendance, payments, schedule and statistics) as tools and
resources for AI assistants.

In stdio mode the server speaks JSON-RPC over stdin/stdout. In HTTP mode it
listens on the given port using the streamable HTTP transport.`,
		Example: `  bzfitness mcp                            # stdio mode
  bzfitness mcp --transport http --port 3001  # HTTP mode`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMCP(transport, port)
		},
	}

	cmd.Flags().StringVar(&transport, "transport", "stdio", "Transport mode: stdio or http")
	cmd.Flags().IntVar(&port, "port", 3001, "HTTP port (only used with --transport http)")

	return cmd
}

func runMCP(transport string, port int) error {
	if transport != "stdio" && transport != "http" {
		return fmt.Errorf("unknown transport %q (use stdio or http)", transport)
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	logger := newLogger(settings.Log.SlogLevel())

	st, err := openStore(settings)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer st.Close()

	srv := bmcp.NewMCPServer(st, settings.Gym.Location, versionString(), logger)

	if transport == "http" {
		addr := fmt.Sprintf(":%d", port)
		logger.Info("starting MCP server", "transport", "http", "addr", addr)
		return srv.ServeHTTP(addr)
	}
	logger.Info("starting MCP server", "transport", "stdio")
	return srv.ServeStdio()
}
