package mcp

import (
	"fmt"
	"log/slog"

	"github.com/Fuabioo/zipaudit/internal/config"
	"github.com/Fuabioo/zipaudit/internal/metrics"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName = "zipaudit"
)

// Version is reported to MCP clients during initialization.
var Version = "0.1.0"

// Server wraps the MCP server with zipaudit-specific state.
type Server struct {
	mcp     *server.MCPServer
	cfg     *config.Config
	metrics metrics.Metrics
	logger  *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithConfig uses cfg instead of loading the configuration directory.
func WithConfig(cfg *config.Config) Option {
	return func(s *Server) {
		s.cfg = cfg
	}
}

// WithMetrics records every scan in m.
func WithMetrics(m metrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithLogger sets the logger passed down to scans.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// NewServer creates and configures the MCP server with all zipaudit tools registered.
func NewServer(opts ...Option) (*Server, error) {
	s := &Server{
		metrics: metrics.Noop{},
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.cfg == nil {
		cfg, err := config.LoadDefault()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		s.cfg = cfg
	}

	s.mcp = server.NewMCPServer(serverName, Version)
	s.registerTools()

	return s, nil
}

func (s *Server) registerTools() {
	// zipaudit_scan
	s.mcp.AddTool(mcp.NewTool("zipaudit_scan",
		mcp.WithDescription("Audits a zip archive without extracting it and returns the risk report"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Absolute path to the zip file")),
	), s.handleScan)

	// zipaudit_check
	s.mcp.AddTool(mcp.NewTool("zipaudit_check",
		mcp.WithDescription("Audits a zip archive and evaluates the report against the configured policy"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Absolute path to the zip file")),
		mcp.WithArray("ignore",
			mcp.Description("Extra gitignore-style patterns whose entries are not reported"),
			mcp.WithStringItems()),
	), s.handleCheck)

	// zipaudit_policy
	s.mcp.AddTool(mcp.NewTool("zipaudit_policy",
		mcp.WithDescription("Returns the policy zipaudit_check evaluates against"),
	), s.handlePolicy)
}
