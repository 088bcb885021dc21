// Package server hosts the registered tools over the Model Context
// Protocol, via stdio or streamable HTTP.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"vcscout/internal/domain"
	"vcscout/internal/tool"
)

const serverName = "AIVCResearch"

// Server wraps an MCP server around a tool registry.
type Server struct {
	mcp    *mcpserver.MCPServer
	logger *slog.Logger
}

// New builds the MCP server and registers every tool from the registry.
// Tool panics are recovered by the server so a single bad request cannot
// take the process down.
func New(registry *tool.Registry, version string, logger *slog.Logger) (*Server, error) {
	srv := mcpserver.NewMCPServer(serverName, version,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithRecovery(),
	)

	for _, t := range registry.List() {
		mcpTool, err := toMCPTool(t)
		if err != nil {
			return nil, fmt.Errorf("register tool %s: %w", t.Name(), err)
		}
		srv.AddTool(mcpTool, handler(registry, t.Name(), logger))
		logger.Debug("registered MCP tool", "name", t.Name())
	}

	return &Server{mcp: srv, logger: logger}, nil
}

// toMCPTool converts a domain tool definition into an MCP tool with its
// JSON Schema input.
func toMCPTool(t domain.Tool) (mcp.Tool, error) {
	schema, err := json.Marshal(t.Parameters())
	if err != nil {
		return mcp.Tool{}, fmt.Errorf("marshal parameters: %w", err)
	}
	return mcp.NewToolWithRawSchema(t.Name(), t.Description(), schema), nil
}

// handler adapts a registered tool to the MCP call signature. Calls go
// through the registry so execution is counted once, in one place. Tool
// errors are converted into descriptive error results instead of protocol
// failures.
func handler(registry *tool.Registry, name string, logger *slog.Logger) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		out, err := registry.Execute(ctx, name, req.GetArguments())
		if err != nil {
			logger.Warn("tool execution failed", "tool", name, "err", err)
			return mcp.NewToolResultError(fmt.Sprintf("Error executing %s: %v", name, err)), nil
		}
		return mcp.NewToolResultText(out), nil
	}
}

// ServeStdio blocks serving MCP over stdin/stdout until ctx is cancelled
// or the stream closes.
func (s *Server) ServeStdio(ctx context.Context) error {
	s.logger.Info("serving MCP over stdio", "server", serverName)
	return mcpserver.NewStdioServer(s.mcp).Listen(ctx, os.Stdin, os.Stdout)
}

// ServeHTTP blocks serving MCP over streamable HTTP on addr until ctx is
// cancelled.
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	httpSrv := mcpserver.NewStreamableHTTPServer(s.mcp)

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.Start(addr) }()
	s.logger.Info("serving MCP over HTTP", "addr", addr)

	select {
	case <-ctx.Done():
		return httpSrv.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}
