package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Fuabioo/zipaudit/internal/audit"
	"github.com/Fuabioo/zipaudit/internal/errors"
	"github.com/Fuabioo/zipaudit/internal/metrics"
	"github.com/Fuabioo/zipaudit/internal/policy"
	"github.com/Fuabioo/zipaudit/internal/render"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// scan audits path, recording the outcome in the server metrics.
func (s *Server) scan(ctx context.Context, path string) (*audit.Report, error) {
	start := time.Now()
	report, err := audit.AuditFile(ctx, path,
		audit.WithExtraHandlers(s.metrics.Handler()),
		audit.WithLogger(s.logger),
	)
	s.metrics.ObserveScan(metrics.StatusOf(err), time.Since(start).Seconds())
	return report, err
}

// handleScan implements zipaudit_scan: audits an archive and returns the report.
func (s *Server) handleScan(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return errorResult("INVALID_PARAMS", "path is required"), nil
	}

	report, err := s.scan(ctx, path)
	if err != nil {
		return mcpErrorResult(err), nil
	}

	response := map[string]interface{}{
		"scan_id": uuid.New().String(),
		"path":    path,
		"report":  render.NewDocument(report),
	}

	return jsonResult(response), nil
}

// handleCheck implements zipaudit_check: audits an archive and applies the policy.
func (s *Server) handleCheck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return errorResult("INVALID_PARAMS", "path is required"), nil
	}

	p := s.cfg.Policy
	if extra := request.GetStringSlice("ignore", nil); len(extra) > 0 {
		p.Ignore = append(append([]string{}, p.Ignore...), extra...)
	}

	report, err := s.scan(ctx, path)
	if err != nil {
		return mcpErrorResult(err), nil
	}

	violations := p.Evaluate(report)
	if violations == nil {
		violations = []policy.Violation{}
	}

	response := map[string]interface{}{
		"scan_id":    uuid.New().String(),
		"path":       path,
		"safe":       len(violations) == 0,
		"violations": violations,
		"report":     render.NewDocument(report),
	}

	return jsonResult(response), nil
}

// handlePolicy implements zipaudit_policy: returns the active policy.
func (s *Server) handlePolicy(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(map[string]interface{}{
		"policy": s.cfg.Policy,
	}), nil
}

// Helper functions

// mcpErrorResult converts a zipaudit error to an MCP error result.
func mcpErrorResult(err error) *mcp.CallToolResult {
	code := errors.Code(err)
	if code == "" {
		code = "INTERNAL_ERROR"
	}

	return errorResult(code, err.Error())
}

// errorResult creates an MCP error result.
func errorResult(code, message string) *mcp.CallToolResult {
	errorData := map[string]interface{}{
		"error": map[string]interface{}{
			"code":    code,
			"message": message,
		},
	}

	jsonBytes, err := json.Marshal(errorData)
	if err != nil {
		// Fallback to simple text
		return mcp.NewToolResultText(fmt.Sprintf("Error: %s - %s", code, message))
	}

	return mcp.NewToolResultText(string(jsonBytes))
}

// jsonResult creates an MCP success result from a JSON-serializable object.
func jsonResult(data interface{}) *mcp.CallToolResult {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return errorResult("INTERNAL_ERROR", fmt.Sprintf("failed to marshal response: %s", err))
	}

	return mcp.NewToolResultText(string(jsonBytes))
}
