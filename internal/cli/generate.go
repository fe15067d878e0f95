package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/planline/planline/pkg/cache"
	"github.com/planline/planline/pkg/config"
	"github.com/planline/planline/pkg/history"
	"github.com/planline/planline/pkg/pipeline"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	dict       string   // path to the TOML connector dictionary
	output     string   // output file path (or base path for multiple formats)
	formats    []string // output formats: json, dot, svg, png, text
	detailed   bool     // label links with connector types
	lenient    bool     // allow non-planar links with a warning
	noOptimize bool     // disable sequence re-optimization
	maxSteps   int      // generation step cap (0 = default)
	refresh    bool     // bypass the generation cache
	noCache    bool     // disable caching entirely
	noSave     bool     // do not record the run in history
}

// newGenerateCmd creates the generate command. Roots are positional
// arguments in point[:TYPE,...] form; the connector dictionary comes
// from --dict.
//
// Default settings:
//   - format: json
//   - strict planarity with auto-optimization (relax with --lenient,
//     --no-optimize)
//   - results cached and recorded per the config file
func newGenerateCmd(configPath *string) *cobra.Command {
	var formatsStr string
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate [root...]",
		Short: "Grow a planar link sequence from root sections",
		Long: `Generate grows a point sequence from one or more root sections, drawing
candidate sections from a connector dictionary and committing only links
that keep the layout planar.

Roots are given as point[:TYPE,...], e.g. "sat:S,O" for a point named sat
with connectors of type S and O.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return runGenerate(cmd.Context(), *configPath, args, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.dict, "dict", "d", "", "path to the TOML connector dictionary (required)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), dot, svg, png, text (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label links with connector types")
	cmd.Flags().BoolVar(&opts.lenient, "lenient", false, "commit non-planar links with a warning instead of rejecting them")
	cmd.Flags().BoolVar(&opts.noOptimize, "no-optimize", false, "disable sequence re-optimization after commits")
	cmd.Flags().IntVar(&opts.maxSteps, "max-steps", 0, "cap on generation steps (0 = default)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the generation cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable result caching")
	cmd.Flags().BoolVar(&opts.noSave, "no-save", false, "do not record the run in history")
	_ = cmd.MarkFlagRequired("dict")

	return cmd
}

// runGenerate wires the configured backends into a pipeline runner and
// executes the full load, generate, render pipeline.
func runGenerate(ctx context.Context, configPath string, rootSpecs []string, opts *generateOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	roots, err := pipeline.ParseRoots(rootSpecs)
	if err != nil {
		return err
	}

	runner, err := newRunner(ctx, cfg, logger, opts.noCache, opts.noSave)
	if err != nil {
		return err
	}
	defer runner.Close()

	spin := newSpinner(ctx, "Generating sequence...")
	spin.Start()

	result, err := runner.Execute(ctx, pipeline.Options{
		DictPath:   opts.dict,
		Roots:      roots,
		Lenient:    opts.lenient,
		NoOptimize: opts.noOptimize,
		MaxSteps:   opts.maxSteps,
		Formats:    opts.formats,
		Detailed:   opts.detailed,
		Refresh:    opts.refresh,
		SaveRun:    !opts.noSave,
		Logger:     logger,
	})
	if err != nil {
		spin.StopWithError(fmt.Sprintf("Generation failed: %v", err))
		return err
	}
	spin.StopWithSuccess(fmt.Sprintf("Generated %q", strings.Join(result.Layout.Sequence, " ")))

	printStats(len(result.Layout.Sequence), len(result.Layout.Links),
		result.Report.Crossings, result.CacheInfo.GenerateHit)
	if result.Unmet > 0 {
		printWarning("%d connector(s) left unmet", result.Unmet)
	}
	if result.RunID != uuid.Nil {
		printDetail("run: %s", result.RunID)
	}

	return writeArtifacts(opts.output, opts.dict, result.Artifacts, opts.formats)
}

// newRunner builds a pipeline runner from the configured backends.
// noCache forces the null cache; noSave skips the history store.
func newRunner(ctx context.Context, cfg *config.Config, logger *log.Logger, noCache, noSave bool) (*pipeline.Runner, error) {
	var (
		c   cache.Cache
		err error
	)
	if noCache {
		c = cache.NewNullCache()
	} else if c, err = openCache(ctx, cfg); err != nil {
		return nil, err
	}

	var store history.Store
	if !noSave {
		if store, err = openHistory(ctx, cfg); err != nil {
			_ = c.Close()
			return nil, err
		}
	}

	runner := pipeline.NewRunner(c, store, logger)
	runner.TTL = cfg.Cache.TTL.Std()
	runner.Defaults = generateDefaults(cfg)
	return runner, nil
}

// generateDefaults translates the configured generation settings into
// pipeline defaults. Flags can relax the modes further but not re-tighten
// what the config loosened.
func generateDefaults(cfg *config.Config) pipeline.Defaults {
	return pipeline.Defaults{
		Lenient:    !cfg.Planarity.Strict,
		NoOptimize: !cfg.Planarity.AutoOptimize,
		MaxSteps:   cfg.Generate.MaxSteps,
	}
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["json"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatJSON}
	}
	return strings.Split(s, ",")
}

// validateFormats checks that all requested formats are valid.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !pipeline.ValidFormats[f] {
			return fmt.Errorf("invalid format: %s (must be 'json', 'dot', 'svg', 'png', or 'text')", f)
		}
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .json, etc.), it strips that
// extension. This is used when generating multiple files.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// extension maps a format to its file extension.
func extension(format string) string {
	if format == pipeline.FormatText {
		return "txt"
	}
	return format
}

// writeArtifacts writes each rendered artifact to its own file. A single
// format goes to output directly (or a path derived from input); multiple
// formats share the base path with per-format extensions.
func writeArtifacts(output, input string, artifacts map[string][]byte, formats []string) error {
	if len(formats) == 1 {
		path := output
		if path == "" {
			path = basePath("", input) + "." + extension(formats[0])
		}
		if err := writeArtifact(path, artifacts[formats[0]]); err != nil {
			return err
		}
		printFile(path)
		return nil
	}

	base := basePath(output, input)
	for _, format := range formats {
		path := fmt.Sprintf("%s.%s", base, extension(format))
		if err := writeArtifact(path, artifacts[format]); err != nil {
			return err
		}
		printFile(path)
	}
	return nil
}
