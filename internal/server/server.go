// Package server exposes a parsed GEDCOM dataset over the Model Context
// Protocol so LLM clients can query family-tree data with typed tools.
package server

import (
	"context"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"genmap/internal/gedcom"
	"genmap/internal/query"
)

// Server wires the query engine into an MCP stdio server.
type Server struct {
	mcpServer *mcp.Server

	mu     sync.RWMutex
	engine *query.Engine
	path   string
}

// New builds a Server with every tool and resource registered. No dataset is
// loaded yet; query tools point the client at load_file until one is.
func New(version string) *Server {
	s := &Server{}
	s.mcpServer = mcp.NewServer(&mcp.Implementation{
		Name:    "genmap",
		Version: version,
	}, nil)
	s.registerTools()
	s.registerResources()
	return s
}

// Load parses the GEDCOM file at path and swaps it in as the active dataset.
// A failed parse leaves the previous dataset in place.
func (s *Server) Load(path string) error {
	tree, err := gedcom.ParseFile(path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine = query.NewEngine(tree)
	s.path = path
	return nil
}

// snapshot returns the active engine and its source path. The engine is nil
// until a dataset has been loaded.
func (s *Server) snapshot() (*query.Engine, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine, s.path
}

// Run serves MCP over stdio until ctx is cancelled or the client hangs up.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}
