// ABOUTME: MCP server exposing one user's RECOMP day to AI assistants.
// ABOUTME: Wraps the MCP server with the today service and the acting user id.
package mcp

import (
	"context"
	"errors"

	"github.com/harperreed/recomp/internal/today"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is reported to MCP clients.
var Version = "dev"

// Server wraps the MCP server with service access for a single user.
type Server struct {
	mcpServer *mcp.Server
	svc       *today.Service
	userID    string
}

// NewServer creates a new MCP server acting as userID.
func NewServer(svc *today.Service, userID string) (*Server, error) {
	if userID == "" {
		return nil, errors.New("mcp server requires a user id")
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "recomp",
			Version: Version,
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		svc:       svc,
		userID:    userID,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve registers the user and starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	if err := s.svc.EnsureUser(ctx, s.userID, nil, nil); err != nil {
		return err
	}
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
