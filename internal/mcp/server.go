// ABOUTME: MCP server initialization and configuration for birdlog.
// ABOUTME: Sets up the server with sighting tools for AI agent access.
package mcp

import (
	"context"
	"fmt"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/birdlog/internal/models"
	"github.com/2389-research/birdlog/internal/storage"
)

// Server wraps the MCP server with bird storage.
type Server struct {
	mcp        *gomcp.Server
	birds      storage.BirdStore
	defaultLoc models.Location
	version    string
}

// ServerOption configures optional Server settings.
type ServerOption func(*Server)

// WithDefaultLocation sets the location given to sightings added without coordinates.
func WithDefaultLocation(loc models.Location) ServerOption {
	return func(s *Server) {
		s.defaultLoc = loc
	}
}

// WithVersion sets the implementation version reported to clients.
func WithVersion(v string) ServerOption {
	return func(s *Server) {
		s.version = v
	}
}

// NewServer creates an MCP server backed by the given bird store.
func NewServer(birds storage.BirdStore, opts ...ServerOption) (*Server, error) {
	if birds == nil {
		return nil, fmt.Errorf("bird store is required")
	}

	s := &Server{
		birds:      birds,
		defaultLoc: models.DefaultLocation(),
		version:    "1.0.0",
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mcp = gomcp.NewServer(
		&gomcp.Implementation{
			Name:    "birdlog",
			Version: s.version,
		},
		nil,
	)

	s.registerBirdTools()

	return s, nil
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcp.Run(ctx, &gomcp.StdioTransport{})
}
