package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/planline/planline/pkg/cache"
	"github.com/planline/planline/pkg/errors"
	"github.com/planline/planline/pkg/gen"
	"github.com/planline/planline/pkg/history"
	"github.com/planline/planline/pkg/layout"
	"github.com/planline/planline/pkg/render/arc"
)

// TTLGenerate is how long cached generation results stay valid.
const TTLGenerate = 24 * time.Hour

// Runner encapsulates pipeline execution with caching and history.
// Both CLI and API use this to avoid duplicating the orchestration logic.
//
// The Runner is stateless except for the cache, history store and logger;
// it doesn't retain pipeline results. Multiple goroutines can safely use
// the same Runner with different options.
type Runner struct {
	Cache   cache.Cache
	History history.Store
	Logger  *log.Logger

	// TTL bounds cached generation results. Zero means TTLGenerate.
	TTL time.Duration

	// Defaults carry configured generation settings, merged into the
	// Options of every Execute call.
	Defaults Defaults
}

// NewRunner creates a runner. A nil cache disables caching via NullCache, a
// nil history store disables run recording, a nil logger uses the default.
func NewRunner(c cache.Cache, store history.Store, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, History: store, Logger: logger}
}

// Execute runs the complete load → generate → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	opts.Lenient = opts.Lenient || r.Defaults.Lenient
	opts.NoOptimize = opts.NoOptimize || r.Defaults.NoOptimize
	if opts.MaxSteps == 0 {
		opts.MaxSteps = r.Defaults.MaxSteps
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := r.logger(opts)
	opts.Logger = logger

	result := &Result{Artifacts: make(map[string][]byte)}

	loadStart := time.Now()
	dict, dictHash, err := r.LoadDictionary(opts)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = time.Since(loadStart)

	logger.Info("loaded dictionary",
		"sections", dict.Len(),
		"duration", result.Stats.LoadTime)

	genStart := time.Now()
	l, steps, unmet, hit, err := r.GenerateWithCacheInfo(ctx, dict, dictHash, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = l
	result.Report = l.Report()
	result.Steps = steps
	result.Unmet = unmet
	result.CacheInfo.GenerateHit = hit
	result.Stats.GenerateTime = time.Since(genStart)

	logger.Info("generated sequence",
		"points", len(l.Sequence),
		"links", len(l.Links),
		"crossings", result.Report.Crossings,
		"cached", hit,
		"duration", result.Stats.GenerateTime)

	renderStart := time.Now()
	artifacts, err := Render(l, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	if opts.SaveRun && r.History != nil {
		run := history.NewRun()
		run.DictHash = dictHash
		for _, s := range opts.Roots {
			run.Roots = append(run.Roots, s.Point)
		}
		run.Sequence = l.Sequence
		run.Links = l.Links
		run.Crossings = result.Report.Crossings
		run.Planar = result.Report.Planar
		run.Steps = steps
		run.Unmet = unmet
		if err := r.History.Save(ctx, run); err != nil {
			logger.Warn("failed to record run", "err", err)
		} else {
			result.RunID = run.ID
		}
	}

	return result, nil
}

// LoadDictionary returns the dictionary for opts plus its content hash,
// which keys the generation cache and identifies the dictionary in history.
func (r *Runner) LoadDictionary(opts Options) (*gen.Dictionary, string, error) {
	dict := opts.Dict
	if dict == nil {
		d, err := gen.LoadDictionary(opts.DictPath)
		if err != nil {
			return nil, "", err
		}
		dict = d
	}

	canonical, err := json.Marshal(dict.All())
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInternal, err, "hash dictionary")
	}
	return dict, cache.Hash(canonical), nil
}

// generatePayload is the cached form of a generation result.
type generatePayload struct {
	Layout *layout.Layout `json:"layout"`
	Steps  int            `json:"steps"`
	Unmet  int            `json:"unmet"`
}

// GenerateWithCacheInfo runs the generation stage with caching and reports
// whether the result came from cache.
func (r *Runner) GenerateWithCacheInfo(ctx context.Context, dict *gen.Dictionary, dictHash string, opts Options) (*layout.Layout, int, int, bool, error) {
	rootSpecs := make([]string, 0, len(opts.Roots))
	for _, s := range opts.Roots {
		spec := s.Point
		for _, c := range s.Connectors {
			spec += ":" + c.Type
		}
		rootSpecs = append(rootSpecs, spec)
	}
	key := cache.GenerateKey(dictHash, rootSpecs, !opts.Lenient, !opts.NoOptimize, opts.MaxSteps)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var payload generatePayload
			if err := json.Unmarshal(data, &payload); err == nil && payload.Layout != nil {
				return payload.Layout, payload.Steps, payload.Unmet, true, nil
			}
			// Corrupt entry, fall through to regenerate.
		}
	}

	l, steps, unmet, err := Generate(dict, opts)
	if err != nil {
		return nil, 0, 0, false, err
	}

	ttl := r.TTL
	if ttl == 0 {
		ttl = TTLGenerate
	}
	if data, err := json.Marshal(generatePayload{Layout: l, Steps: steps, Unmet: unmet}); err == nil {
		_ = r.Cache.Set(ctx, key, data, ttl)
	}

	return l, steps, unmet, false, nil
}

// Generate runs a generation pass over dict and converts the outcome to a
// layout.
func Generate(dict *gen.Dictionary, opts Options) (*layout.Layout, int, int, error) {
	adapter := gen.NewPlanarDict(dict,
		gen.WithStrict(!opts.Lenient),
		gen.WithAutoOptimize(!opts.NoOptimize),
		gen.WithLogger(opts.Logger))

	res, err := gen.Grow(adapter, opts.Roots, gen.GrowOptions{
		MaxSteps: opts.MaxSteps,
		Logger:   opts.Logger,
	})
	if err != nil {
		return nil, 0, 0, err
	}

	l := &layout.Layout{Sequence: res.Sequence}
	for _, ln := range res.Links {
		l.Links = append(l.Links, layout.Link{
			From:      ln.From,
			To:        ln.To,
			Type:      ln.FromCon.Type,
			NonPlanar: ln.NonPlanar,
		})
	}
	return l, res.Steps, res.Unmet, nil
}

// Render produces the requested artifact formats from a layout.
func Render(l *layout.Layout, opts Options) (map[string][]byte, error) {
	arcOpts := arc.DefaultOptions()
	arcOpts.Detailed = opts.Detailed
	arcOpts.Highlight = !opts.NoHighlight

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON:
			data, err = json.MarshalIndent(l, "", "  ")
		case FormatDOT:
			data = []byte(arc.ToDOT(l, arcOpts))
		case FormatSVG:
			data, err = arc.RenderSVG(arc.ToDOT(l, arcOpts))
		case FormatPNG:
			data, err = arc.RenderPNG(arc.ToDOT(l, arcOpts))
		case FormatText:
			data = []byte(arc.Text(l))
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// Close releases resources held by the runner.
func (r *Runner) Close() error {
	var first error
	if r.Cache != nil {
		first = r.Cache.Close()
	}
	if r.History != nil {
		if err := r.History.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
