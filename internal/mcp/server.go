package mcp

import (
	"context"
	"time"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	"zendesk-analytics/internal/config"
	"zendesk-analytics/internal/report"
	"zendesk-analytics/internal/tickets"
)

const serverName = "zendesk-analytics"

// Server exposes the ticket analytics as MCP tools.
type Server struct {
	cfg       *config.AppConfig
	tickets   *tickets.Service
	reports   *report.Store
	deliverer report.Deliverer
	version   string
	now       func() time.Time
}

// NewServer creates a new MCP server.
func NewServer(cfg *config.AppConfig, svc *tickets.Service, store *report.Store, deliverer report.Deliverer, version string) *Server {
	if deliverer == nil {
		deliverer = report.LogDeliverer{}
	}
	return &Server{
		cfg:       cfg,
		tickets:   svc,
		reports:   store,
		deliverer: deliverer,
		version:   version,
		now:       time.Now,
	}
}

// Start serves the tools over stdio until ctx is cancelled or the client disconnects.
func (s *Server) Start(ctx context.Context) error {
	srv, err := s.newMCPServer()
	if err != nil {
		return err
	}
	log.Info().Str("version", s.version).Msg("MCP server listening on stdio")
	return srv.Run(ctx, &sdk.StdioTransport{})
}

func (s *Server) newMCPServer() (*sdk.Server, error) {
	srv := sdk.NewServer(&sdk.Implementation{Name: serverName, Version: s.version}, nil)
	if err := s.registerTools(srv); err != nil {
		return nil, err
	}
	return srv, nil
}
