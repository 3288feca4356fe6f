// Package mcp exposes export analysis as Model Context Protocol tools.
package mcp

import (
	"context"
	"fmt"

	"ticketlens/internal/config"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

// Name is the implementation name announced during initialization.
const Name = "ticketlens"

// Server holds the state for the MCP server. Tool calls share nothing but the
// read-only configuration.
type Server struct {
	cfg     *config.AppConfig
	version string
}

// NewServer creates a new MCP server.
func NewServer(cfg *config.AppConfig, version string) *Server {
	if cfg == nil {
		cfg = &config.AppConfig{StaleDays: config.DefaultStaleDays, Source: config.DefaultSource}
	}
	return &Server{cfg: cfg, version: version}
}

// Build returns an SDK server with every tool registered.
func (s *Server) Build() (*sdk.Server, error) {
	srv := sdk.NewServer(&sdk.Implementation{Name: Name, Version: s.version}, nil)
	if err := s.registerTools(srv); err != nil {
		return nil, err
	}
	return srv, nil
}

// Start serves over stdio until the client disconnects or ctx is done.
func (s *Server) Start(ctx context.Context) error {
	srv, err := s.Build()
	if err != nil {
		return err
	}
	log.Info().Str("version", s.version).Msg("MCP server listening on stdio")
	if err := srv.Run(ctx, &sdk.StdioTransport{}); err != nil {
		return fmt.Errorf("mcp server stopped: %w", err)
	}
	return nil
}
