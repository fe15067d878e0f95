// Package pipeline provides the core generation pipeline for planline.
//
// This package implements the complete load → generate → render pipeline
// that can be used by CLI and API components. Centralizing it keeps the two
// entry points behaviorally identical.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read the connector dictionary from a TOML file
//  2. Generate: Grow a sequence from root sections through the planarity
//     adapter, with result caching
//  3. Render: Produce output in the requested formats (JSON, DOT, SVG,
//     PNG, text)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, store, logger)
//	opts := pipeline.Options{
//	    DictPath: "dict.toml",
//	    Roots:    roots,
//	    Formats:  []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/planline/planline/pkg/errors"
	"github.com/planline/planline/pkg/gen"
	"github.com/planline/planline/pkg/layout"
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatText = "text"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatText: true,
}

// Options configures a pipeline execution. The zero value of the mode
// fields selects the defaults: strict planarity and auto-optimization on.
type Options struct {
	// DictPath locates the TOML dictionary. Ignored when Dict is set.
	DictPath string

	// Dict supplies a pre-loaded dictionary, skipping the load stage.
	Dict *gen.Dictionary

	// Roots are the sections generation starts from.
	Roots []gen.Section

	// Lenient allows non-planar links through with a warning instead of
	// rejecting them.
	Lenient bool

	// NoOptimize disables sequence re-optimization after commits that
	// leave crossings.
	NoOptimize bool

	// MaxSteps caps the generation pass. Zero means gen.DefaultMaxSteps.
	MaxSteps int

	// Formats lists the outputs to render. Empty means json only.
	Formats []string

	// Detailed labels rendered links with their connector types.
	Detailed bool

	// NoHighlight disables coloring of crossing links in rendered output.
	NoHighlight bool

	// Refresh bypasses the generation cache.
	Refresh bool

	// SaveRun records the result in history when a store is configured.
	SaveRun bool

	// Logger overrides the runner's logger for this execution.
	Logger *log.Logger
}

// Defaults are generation settings a runner merges into every execution.
// They carry configuration-file values; explicit Options fields still win,
// since the merge only relaxes modes or fills an unset step cap.
type Defaults struct {
	Lenient    bool
	NoOptimize bool
	MaxSteps   int
}

// ValidateAndSetDefaults checks the options and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Dict == nil && o.DictPath == "" {
		return errors.New(errors.ErrCodeInvalidInput, "a dictionary is required")
	}
	if len(o.Roots) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "at least one root section is required")
	}
	if o.MaxSteps <= 0 {
		o.MaxSteps = gen.DefaultMaxSteps
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	for _, f := range o.Formats {
		if !ValidFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", f)
		}
	}
	return nil
}

// Result is the outcome of a pipeline execution.
type Result struct {
	// RunID identifies the history record, uuid.Nil when not saved.
	RunID uuid.UUID

	Layout *layout.Layout
	Report layout.Report

	// Artifacts maps format name to rendered bytes.
	Artifacts map[string][]byte

	Steps int
	Unmet int

	CacheInfo struct {
		GenerateHit bool
	}
	Stats struct {
		LoadTime     time.Duration
		GenerateTime time.Duration
		RenderTime   time.Duration
	}
}

// ParseRoots converts root specs of the form "point:TYPE,TYPE" into
// sections. The connector list may be empty ("point" alone), which yields a
// root that accepts no links.
func ParseRoots(specs []string) ([]gen.Section, error) {
	sections := make([]gen.Section, 0, len(specs))
	for _, spec := range specs {
		point, list, _ := strings.Cut(spec, ":")
		if err := errors.ValidatePointID(point); err != nil {
			return nil, err
		}
		s := gen.Section{Point: point}
		if list != "" {
			for _, typ := range strings.Split(list, ",") {
				typ = strings.TrimSpace(typ)
				if err := errors.ValidateConnectorType(typ); err != nil {
					return nil, err
				}
				s.Connectors = append(s.Connectors, gen.Connector{Type: typ})
			}
		}
		sections = append(sections, s)
	}
	return sections, nil
}
