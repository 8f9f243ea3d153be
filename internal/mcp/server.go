// ABOUTME: MCP server initialization and configuration
// ABOUTME: Exposes the camera session and saved places as tools and resources for AI agents

package mcp

import (
	"context"
	"fmt"

	"github.com/harper/vantage/internal/session"
	"github.com/harper/vantage/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
)

// Server wraps an MCP server around a navigation session and a places repository.
type Server struct {
	mcp     *mcp.Server
	session *session.Session
	places  storage.PlaceRepository
	log     zerolog.Logger
}

// NewServer creates MCP server with all capabilities.
func NewServer(sess *session.Session, places storage.PlaceRepository, log zerolog.Logger) (*Server, error) {
	if sess == nil {
		return nil, fmt.Errorf("session is required")
	}
	if places == nil {
		return nil, fmt.Errorf("places repository is required")
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "vantage",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcp:     mcpServer,
		session: sess,
		places:  places,
		log:     log,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	s.log.Info().Msg("mcp server listening on stdio")
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}
