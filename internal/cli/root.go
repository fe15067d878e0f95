package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/planline/planline/pkg/buildinfo"
)

// Execute runs the planline CLI and returns an error if any command fails.
//
// The function sets up the root command with all subcommands (generate,
// check, render, runs, serve), configures logging based on the --verbose
// flag, and executes the command tree.
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext; the --config flag is shared by the commands that need
// cache or history backends.
func Execute(ctx context.Context) error {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          "planline",
		Short:        "Planline generates and audits planar link sequences",
		Long:         `Planline grows point sequences from connector dictionaries under a planarity constraint, audits existing layouts for link crossings, and renders arc diagrams.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file")

	root.AddCommand(newGenerateCmd(&configPath))
	root.AddCommand(newCheckCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newRunsCmd(&configPath))
	root.AddCommand(newServeCmd(&configPath))

	return root.ExecuteContext(ctx)
}
