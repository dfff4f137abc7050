package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/spvbuild/internal/build"
)

// versionLine matches the template of the root --version flag.
func versionLine() string {
	return fmt.Sprintf("spvbuild version %s (commit: %s, date: %s)\n", build.Version, build.Commit, build.Date)
}

func (c *CLI) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the spvbuild version and build details",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprint(cmd.OutOrStdout(), versionLine())
		},
	}
}
