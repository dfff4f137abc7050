// Package commands implements the CLI commands for spvbuild.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/spvbuild/internal/app"
	"go.trai.ch/spvbuild/internal/build"
	"go.trai.ch/spvbuild/internal/core/domain"
)

// CLI represents the command line interface for spvbuild.
type CLI struct {
	app     Application
	logs    LogMode
	rootCmd *cobra.Command

	root     string
	jsonLogs bool
}

// Application represents the application logic interface.
type Application interface {
	Compile(ctx context.Context, opts app.CompileOptions) error
	List(ctx context.Context, opts app.Options) ([]domain.Artifact, error)
	Clean(ctx context.Context, opts app.Options) error
	Watch(ctx context.Context, opts app.Options) error
}

// LogMode switches the log output between the pretty and JSON formats.
type LogMode interface {
	SetJSON(enable bool)
}

// New creates a new CLI instance with the given app. logs may be nil.
func New(a Application, logs LogMode) *CLI {
	rootCmd := &cobra.Command{
		Use:           "spvbuild",
		Short:         "Compile GLSL shaders to SPIR-V with the Vulkan SDK",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(versionLine())
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		logs:    logs,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentFlags().StringVarP(&c.root, "root", "C", "", "Project root (defaults to the working directory)")
	rootCmd.PersistentFlags().BoolVar(&c.jsonLogs, "json", false, "Write logs as JSON")
	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		if c.jsonLogs && c.logs != nil {
			c.logs.SetJSON(true)
		}
	}

	rootCmd.AddCommand(c.newCompileCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func (c *CLI) options() app.Options {
	return app.Options{Root: c.root}
}
