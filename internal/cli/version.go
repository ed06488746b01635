package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagVersionJSON bool

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Displays the version and commit hash of zipaudit.`,
		Args:  cobra.NoArgs,
		RunE:  runVersion,
	}
	cmd.Flags().BoolVar(&flagVersionJSON, "json", false, "Output in JSON format")
	return cmd
}

func runVersion(cmd *cobra.Command, args []string) error {
	if flagVersionJSON {
		output := map[string]interface{}{
			"version": Version,
			"commit":  Commit,
		}
		return outputJSON(cmd.OutOrStdout(), output)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "zipaudit version %s\n", GetVersion())
	return nil
}
