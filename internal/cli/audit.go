package cli

import (
	"fmt"

	"github.com/Fuabioo/zipaudit/internal/audit"
	"github.com/Fuabioo/zipaudit/internal/config"
	"github.com/Fuabioo/zipaudit/internal/errors"
	"github.com/Fuabioo/zipaudit/internal/render"
	"github.com/spf13/cobra"
)

// exactlyOneArchive rejects anything but a single archive path with a usage error.
func exactlyOneArchive(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return &usageError{
			cmd: cmd,
			msg: fmt.Sprintf("expected exactly one archive path, got %d argument(s)", len(args)),
		}
	}
	return nil
}

func runAudit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	format := cfg.Output.Format
	if flagFormat != "" {
		format = flagFormat
	}
	colorMode := cfg.Output.Color
	if flagColor != "" {
		colorMode = flagColor
	}

	switch format {
	case config.FormatJSON, config.FormatText:
	default:
		return &usageError{cmd: cmd, msg: fmt.Sprintf("unknown format %q (want json or text)", format)}
	}

	logger := newLogger(cmd.ErrOrStderr(), flagVerbose)
	path := args[0]

	report, err := audit.AuditFile(cmd.Context(), path, audit.WithLogger(logger))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == config.FormatText {
		err = render.Text(out, report, useColor(colorMode, out))
	} else {
		err = render.JSON(out, report, !flagCompact)
	}
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if !flagCheck {
		return nil
	}

	p := cfg.Policy
	p.Ignore = append(append([]string{}, p.Ignore...), flagIgnore...)

	violations := p.Evaluate(report)
	for _, v := range violations {
		fmt.Fprintf(cmd.ErrOrStderr(), "violation: %s\n", v)
	}
	if len(violations) > 0 {
		logger.Debug("policy check failed", "path", path, "violations", len(violations))
		return errors.PolicyViolation(len(violations))
	}

	return nil
}
