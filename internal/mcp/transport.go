package mcp

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mark3labs/mcp-go/server"
)

// ServeIO runs the server over newline-delimited JSON-RPC on in and out
// until ctx is cancelled or in is exhausted.
func (s *Server) ServeIO(ctx context.Context, in io.Reader, out io.Writer) error {
	stdioServer := server.NewStdioServer(s.mcp)
	if err := stdioServer.Listen(ctx, in, out); err != nil {
		return fmt.Errorf("failed to serve MCP: %w", err)
	}
	return nil
}

// Serve starts the MCP server on stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.ServeIO(ctx, os.Stdin, os.Stdout)
}

// Serve creates a new MCP server and starts serving on stdio.
func Serve(ctx context.Context, opts ...Option) error {
	srv, err := NewServer(opts...)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	if err := srv.Serve(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
