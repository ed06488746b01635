package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	// Version is set via ldflags during build
	Version = "dev"
	// Commit is set via ldflags during build
	Commit = "unknown"

	// Global flags
	flagVerbose bool

	// Audit flags
	flagFormat  string
	flagCompact bool
	flagCheck   bool
	flagColor   string
	flagIgnore  []string
)

// newRootCmd builds the command tree. Flags are rebound on every call.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "zipaudit <archive>",
		Short: "Read-only risk audit for zip archives",
		Long: `zipaudit inspects a zip archive's metadata without extracting anything and
reports zip-bomb compression ratios, unsafe paths, encrypted entries,
problematic names and symlinks that escape the extraction root.

It provides both CLI and MCP server interfaces for human and AI agent use.`,
		Args:          exactlyOneArchive,
		RunE:          runAudit,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log scan diagnostics to stderr")

	// Audit flags
	rootCmd.Flags().StringVarP(&flagFormat, "format", "f", "", "Output format: json, text (default from config, json)")
	rootCmd.Flags().BoolVar(&flagCompact, "compact", false, "Print JSON on a single line")
	rootCmd.Flags().BoolVar(&flagCheck, "check", false, "Evaluate the policy and exit 5 on violations")
	rootCmd.Flags().StringVar(&flagColor, "color", "", "Color text output: auto, always, never (default from config, auto)")
	rootCmd.Flags().StringSliceVar(&flagIgnore, "ignore", nil, "Gitignore-style pattern excluded from --check (repeatable)")

	rootCmd.AddCommand(newMCPCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute builds the command tree and runs it, exiting with the mapped exit
// code on failure. This is called by main.main().
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	if err != nil {
		printError(os.Stderr, err)
		stop()
		os.Exit(getExitCode(err))
	}
	return nil
}

// GetVersion returns the version string
func GetVersion() string {
	if len(Commit) >= 7 && Commit != "unknown" {
		return fmt.Sprintf("%s (%s)", Version, Commit[:7])
	}
	return Version
}
