package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/spvbuild/internal/app"
	"go.trai.ch/spvbuild/internal/core/domain"
)

func (c *CLI) newCompileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compile [jobs...]",
		Short: "Compile the shaders to SPIR-V",
		Long: "Compile every shader of the configured variant in order, stopping at the first failure.\n" +
			"Pass job names such as shader2D.vert to compile only those.",
		Args:      cobra.ArbitraryArgs,
		ValidArgs: jobNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Compile(cmd.Context(), app.CompileOptions{
				Options: c.options(),
				Jobs:    args,
			})
		},
	}
}

// jobNames lists every job name of the full variant for shell completion.
func jobNames() []string {
	jobs, err := domain.PlanJobs(domain.DefaultLayout(""), domain.VariantFull)
	if err != nil {
		return nil
	}
	return domain.JobNames(jobs)
}
