package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/planline/planline/pkg/errors"
	"github.com/planline/planline/pkg/layout"
)

// checkOpts holds the command-line flags for the check command.
type checkOpts struct {
	jsonOut bool // emit the report as JSON instead of styled text
	strict  bool // exit non-zero when the layout has crossings
}

// newCheckCmd creates the check command for auditing layout files.
func newCheckCmd() *cobra.Command {
	var opts checkOpts

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Audit a layout file for link crossings",
		Long: `Check validates a layout JSON file and reports every pair of links
whose arcs would cross when drawn above the sequence.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "emit the report as JSON")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "exit non-zero when the layout has crossings")

	return cmd
}

// runCheck imports the layout, computes its planarity report and prints it.
func runCheck(ctx context.Context, input string, opts *checkOpts) error {
	logger := loggerFromContext(ctx)
	logger.Debugf("Checking %s", input)

	l, err := layout.ImportJSON(input)
	if err != nil {
		return err
	}

	report := l.Report()

	if opts.jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		printPlanar(report.Planar, report.Crossings)
		printStats(len(l.Sequence), report.LinkCount, report.Crossings, false)
		for _, pair := range report.Crossing {
			printDetail("%s crosses %s", pair[0], pair[1])
		}
	}

	if opts.strict && !report.Planar {
		return errors.New(errors.ErrCodeNonPlanarLink, "layout has %d crossing link pair(s)", report.Crossings)
	}
	return nil
}
