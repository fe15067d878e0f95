// Package pkg provides the core libraries for planline sequence generation.
//
// # Overview
//
// Planline grows point sequences from connector dictionaries while keeping
// every committed link planar: no two link arcs drawn above the sequence may
// cross. The pkg directory is organized into five main areas:
//
//  1. [planar] - The constraint store (crossing checks, candidate filtering,
//     sequence optimization)
//  2. [gen] - The generation adapter and frontier driver
//  3. [layout] - Layout serialization and planarity auditing
//  4. [pipeline] - Orchestration (load → generate → render)
//  5. [render/arc] - Arc diagram rendering (DOT, SVG, PNG, text)
//
// Supporting packages provide caching ([cache]), run history ([history]),
// configuration ([config]), error codes ([errors]) and instrumentation
// hooks ([observability]).
//
// # Architecture
//
// The typical data flow through planline:
//
//	Connector Dictionary (TOML)
//	         ↓
//	    [gen] package (grow sequence from roots)
//	         ↓
//	    [planar] package (filter and commit links)
//	         ↓
//	    [layout] package (serialize, audit crossings)
//	         ↓
//	    [render/arc] package (DOT/SVG/PNG/text output)
//
// # Quick Start
//
// Run the full pipeline through a [pipeline.Runner]:
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	roots, _ := pipeline.ParseRoots([]string{"sat:S,O"})
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    DictPath: "dict.toml",
//	    Roots:    roots,
//	    Formats:  []string{"svg"},
//	})
//
// Or drive generation directly:
//
//	dict, _ := gen.LoadDictionary("dict.toml")
//	adapter := gen.NewPlanarDict(dict)
//	res, _ := gen.Grow(adapter, roots, gen.GrowOptions{})
//
// [planar]: https://pkg.go.dev/github.com/planline/planline/pkg/planar
// [gen]: https://pkg.go.dev/github.com/planline/planline/pkg/gen
// [layout]: https://pkg.go.dev/github.com/planline/planline/pkg/layout
// [pipeline]: https://pkg.go.dev/github.com/planline/planline/pkg/pipeline
// [render/arc]: https://pkg.go.dev/github.com/planline/planline/pkg/render/arc
// [cache]: https://pkg.go.dev/github.com/planline/planline/pkg/cache
// [history]: https://pkg.go.dev/github.com/planline/planline/pkg/history
// [config]: https://pkg.go.dev/github.com/planline/planline/pkg/config
// [errors]: https://pkg.go.dev/github.com/planline/planline/pkg/errors
// [observability]: https://pkg.go.dev/github.com/planline/planline/pkg/observability
package pkg
