// ABOUTME: MCP server setup for the ironlog session store.
// ABOUTME: Exposes session mutations and analytics to AI assistants over stdio.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/ironlog/internal/logging"
	"github.com/harperreed/ironlog/internal/session"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// Server wraps the MCP server with store access.
type Server struct {
	mcpServer *mcp.Server
	store     *session.Store
	logger    *log.Logger
	now       func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = logging.OrDiscard(l) }
}

// WithClock overrides the time source used for analytics windows.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// NewServer creates a new MCP server over store.
func NewServer(store *session.Store, opts ...Option) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "ironlog",
			Version: Version,
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		store:     store,
		logger:    logging.Discard(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// refresh picks up changes other processes saved, such as a workout logged
// from the CLI while the server runs. On failure the handler answers from
// memory.
func (s *Server) refresh() {
	if err := s.store.Refresh(); err != nil {
		s.logger.Warn("refresh store", "err", err)
	}
}

// saved reports a mutation that was applied in memory but not stored.
func (s *Server) saved() error {
	if err := s.store.Err(); err != nil {
		return fmt.Errorf("change was not saved: %w", err)
	}
	return nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("mcp server starting", "transport", "stdio")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
