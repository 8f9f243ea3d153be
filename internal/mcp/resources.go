// ABOUTME: MCP resource definitions
// ABOUTME: Provides read-only views of the history and saved places for AI agents

package mcp

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	historyURI = "vantage://history"
	placesURI  = "vantage://places"
)

func (s *Server) registerResources() {
	s.mcp.AddResource(&mcp.Resource{
		Name:        historyURI,
		Description: "Navigation history around the current viewpoint, oldest first",
		URI:         historyURI,
		MIMEType:    "application/json",
	}, s.handleHistoryResource)

	s.mcp.AddResource(&mcp.Resource{
		Name:        placesURI,
		Description: "All saved places sorted by name",
		URI:         placesURI,
		MIMEType:    "application/json",
	}, s.handlePlacesResource)
}

func jsonResource(uri string, v any) *mcp.ReadResourceResult {
	jsonBytes, _ := json.MarshalIndent(v, "", "  ") //nolint:errchkjson // output is always serializable
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		},
	}
}

func (s *Server) handleHistoryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	output := toHistoryOutput(s.session.History(), s.session.State())
	return jsonResource(historyURI, output), nil
}

func (s *Server) handlePlacesResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	output, err := s.listPlaces()
	if err != nil {
		return nil, err
	}
	return jsonResource(placesURI, output), nil
}
