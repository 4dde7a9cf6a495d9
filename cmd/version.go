package cmd

import (
	"fmt"

	"github.com/abhisek/examdraft/internal/draft"
	"github.com/spf13/cobra"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "examdraft %s (draft format %s)\n", version, draft.FormatVersion)
	},
}
