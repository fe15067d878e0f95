package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/planline/planline/pkg/layout"
	"github.com/planline/planline/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string   // output file path (or base path for multiple formats)
	formats     []string // output formats: dot, svg, png, text, json
	detailed    bool     // label links with connector types
	noHighlight bool     // do not color crossing links
}

// newRenderCmd creates the render command for drawing arc diagrams from
// layout files.
//
// Default settings:
//   - format: svg
//   - crossing links highlighted in red
func newRenderCmd() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a layout file as an arc diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseRenderFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, png, text, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label links with connector types")
	cmd.Flags().BoolVar(&opts.noHighlight, "no-highlight", false, "do not color crossing links")

	return cmd
}

// parseRenderFormats parses the --format flag, defaulting to ["svg"].
func parseRenderFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return parseFormats(s)
}

// runRender imports the layout and renders it to the requested formats.
func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)
	p := newProgress(logger)

	l, err := layout.ImportJSON(input)
	if err != nil {
		return err
	}
	logger.Infof("Loaded layout: %d points, %d links", len(l.Sequence), len(l.Links))

	report := l.Report()
	if !report.Planar {
		printWarning("Layout has %d crossing link pair(s)", report.Crossings)
	}

	artifacts, err := pipeline.Render(l, pipeline.Options{
		Formats:     opts.formats,
		Detailed:    opts.detailed,
		NoHighlight: opts.noHighlight,
	})
	if err != nil {
		return err
	}
	for _, format := range opts.formats {
		logger.Debugf("Generated %s: %d bytes", format, len(artifacts[format]))
	}

	if err := writeArtifacts(opts.output, input, artifacts, opts.formats); err != nil {
		return fmt.Errorf("write outputs: %w", err)
	}
	p.done(fmt.Sprintf("Rendered %d format(s)", len(opts.formats)))
	return nil
}
