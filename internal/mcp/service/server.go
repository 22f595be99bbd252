// Package service hosts the MCP server for the chronicle engine over
// stdio or HTTP.
package service

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/nocturne-rpg/nocturne/internal/mcp/domain"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "Nocturne Chronicle MCP"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP serves MCP over streamable HTTP.
	TransportHTTP TransportKind = "http"
)

// Config configures the MCP server.
type Config struct {
	Transport TransportKind
	HTTPAddr  string // HTTP bind address, defaults to localhost:8081
	Deps      domain.Deps
}

// Server hosts the MCP server.
type Server struct {
	mcpServer *mcp.Server
	deps      domain.Deps
}

// New creates a configured MCP server over the engine dependencies.
func New(deps domain.Deps) *Server {
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)

	server := &Server{mcpServer: mcpServer, deps: deps}
	registerDiceTools(mcpServer, deps)
	registerCharacterTools(mcpServer, deps)
	registerCombatTools(mcpServer, deps)
	registerChronicleTools(mcpServer, deps)
	registerCityResources(mcpServer, deps)
	return server
}

// Run creates and serves the MCP server until the context ends.
func Run(ctx context.Context, cfg Config) error {
	server := New(cfg.Deps)

	switch cfg.Transport {
	case TransportStdio, "":
		return server.mcpServer.Run(ctx, &mcp.StdioTransport{})
	case TransportHTTP:
		return server.serveHTTP(ctx, cfg.HTTPAddr)
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}
