package mcp

import (
	"context"
	"fmt"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/winstate/internal/config"
	"github.com/1broseidon/winstate/internal/platform"
)

const (
	ServerName    = "winstate"
	ServerVersion = "0.1.0"
)

// Server is the MCP server exposing read-only window state inspection.
type Server struct {
	mcpServer *mcpsdk.Server
	config    *config.Config
	screen    platform.Screen
	logger    *slog.Logger
}

// NewServer creates a new MCP server that reconciles against screen.
func NewServer(cfg *config.Config, screen platform.Screen, logger *slog.Logger) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if screen == nil {
		return nil, fmt.Errorf("a display backend is required for the MCP server")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		config: cfg,
		screen: screen,
		logger: logger,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s, nil
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_window_state",
		Description: "Read the saved window state file and report the geometry that would be restored against the currently attached displays, including whether the saved record was kept or reset to defaults.",
	}, s.handleGetWindowState)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_displays",
		Description: "List the currently attached displays with their bounds and which one is primary.",
	}, s.handleListDisplays)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "check_geometry",
		Description: "Check whether a window rectangle would be restored as-is on the current displays. Every corner must land on some display, and display_bounds (when given) must still match an attached display exactly.",
	}, s.handleCheckGeometry)
}
