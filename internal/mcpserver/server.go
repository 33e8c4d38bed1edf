// Package mcpserver exposes the pipeline as Model Context Protocol tools
// over stdio, for AI assistants that consume MCP.
package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/va2ai/bvaapi2/internal/pipeline"
)

const serverName = "bvaapi-mcp"

// Server wraps the MCP stdio server around the pipeline.
type Server struct {
	mcp      *server.MCPServer
	pipeline *pipeline.Pipeline
	logger   *zap.Logger
}

// NewServer creates the MCP server and registers the tool set.
func NewServer(p *pipeline.Pipeline, version string, logger *zap.Logger) *Server {
	s := &Server{
		mcp:      server.NewMCPServer(serverName, version),
		pipeline: p,
		logger:   logger,
	}

	s.mcp.AddTool(searchTool(), s.handleSearch)
	s.mcp.AddTool(caseTool(), s.handleCase)
	s.mcp.AddTool(caseTextTool(), s.handleCaseText)
	s.mcp.AddTool(analyzeTool(), s.handleAnalyze)

	return s
}

// Serve blocks on stdio until the client disconnects.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("mcp server listening on stdio")
	return server.ServeStdio(s.mcp)
}
