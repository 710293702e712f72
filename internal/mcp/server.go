package mcp

import (
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/retshidi-radebe/bzfitness/internal/store"
)

// MCPServer exposes the gym's members, attendance, payments and schedule
// as read-only MCP tools and resources so assistants can answer questions
// about the gym without a dashboard login.
type MCPServer struct {
	store  *store.Store
	loc    *time.Location
	logger *slog.Logger
	now    func() time.Time
	server *server.MCPServer
}

// NewMCPServer creates an MCPServer with every tool and resource
// registered. loc decides which calendar day "today" is; nil means UTC.
func NewMCPServer(st *store.Store, loc *time.Location, version string, logger *slog.Logger) *MCPServer {
	if loc == nil {
		loc = time.UTC
	}
	s := &MCPServer{
		store:  st,
		loc:    loc,
		logger: logger,
		now:    time.Now,
	}

	mcpServer := server.NewMCPServer(
		"BZ Fitness",
		version,
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)
	s.registerTools(mcpServer)
	s.registerResources(mcpServer)

	s.server = mcpServer
	return s
}

// Server returns the underlying mcp-go MCPServer instance.
func (s *MCPServer) Server() *server.MCPServer {
	return s.server
}

// ServeStdio serves MCP over stdin/stdout, for clients that launch the
// binary as a subprocess.
func (s *MCPServer) ServeStdio() error {
	s.logger.Info("starting MCP server in stdio mode")
	return server.ServeStdio(s.server)
}

// ServeHTTP serves MCP in Streamable HTTP mode on addr (e.g. ":3001").
func (s *MCPServer) ServeHTTP(addr string) error {
	httpServer := server.NewStreamableHTTPServer(s.server)
	s.logger.Info("MCP HTTP server starting", "addr", addr)
	return httpServer.Start(addr)
}

func (s *MCPServer) today() time.Time {
	return s.now().In(s.loc)
}

func readOnlyAnnotation() mcp.ToolAnnotation {
	return mcp.ToolAnnotation{
		ReadOnlyHint: boolPtr(true),
	}
}

func boolPtr(b bool) *bool {
	return &b
}
