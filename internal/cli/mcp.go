package cli

import (
	"context"
	"os"

	"github.com/Fuabioo/zipaudit/internal/mcp"
	"github.com/Fuabioo/zipaudit/internal/metrics"
	"github.com/spf13/cobra"
)

var flagMetricsAddr string

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server on stdio",
		Long: `Starts the Model Context Protocol (MCP) server on stdio.

This command is used by MCP clients (Claude Desktop, etc.) to audit archives
through zipaudit. It should not be run directly by users.`,
		Args: cobra.NoArgs,
		RunE: runMCP,
	}
	cmd.Flags().StringVar(&flagMetricsAddr, "metrics-addr", "", "Serve Prometheus /metrics on this address (default from config, disabled)")
	return cmd
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// stdout carries the protocol, so logs always go to stderr
	logger := newLogger(os.Stderr, flagVerbose)
	mcp.Version = GetVersion()

	opts := []mcp.Option{mcp.WithConfig(cfg), mcp.WithLogger(logger)}

	addr := cfg.Metrics.Addr
	if flagMetricsAddr != "" {
		addr = flagMetricsAddr
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if addr != "" {
		opts = append(opts, mcp.WithMetrics(metrics.NewProm("zipaudit", nil)))
		go func() {
			if err := metrics.Serve(ctx, addr); err != nil {
				logger.Error("metrics server stopped", "addr", addr, "error", err)
			}
		}()
		logger.Info("serving metrics", "addr", addr)
	}

	return mcp.Serve(ctx, opts...)
}
