package cli

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Fuabioo/zipaudit/internal/config"
	"github.com/Fuabioo/zipaudit/internal/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// usageError is an invocation mistake; the usage text is printed with it.
type usageError struct {
	cmd *cobra.Command
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

// outputJSON marshals and prints indented JSON to w.
func outputJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// isTerminal checks if the given file descriptor is a TTY.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves a color mode for output written to w.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

// getExitCode maps error codes to CLI exit codes.
func getExitCode(err error) int {
	if err == nil {
		return 0
	}

	code := errors.Code(err)
	switch code {
	case errors.CodePolicyViolation:
		return 5 // Policy / security
	case "":
		// Not a zipaudit error - could be usage error
		return 1 // General error
	default:
		return 1 // General error
	}
}

// loadConfig loads the configuration from the config directory.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// newLogger returns a text logger on w: debug with --verbose, warnings otherwise.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// printError prints an error to w, followed by usage for invocation mistakes.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)

	var ue *usageError
	if stderrors.As(err, &ue) && ue.cmd != nil {
		fmt.Fprint(w, ue.cmd.UsageString())
	}
}
