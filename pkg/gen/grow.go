package gen

import (
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/planline/planline/pkg/errors"
	"github.com/planline/planline/pkg/observability"
)

// DefaultMaxSteps bounds a generation pass when GrowOptions.MaxSteps is zero.
const DefaultMaxSteps = 256

// GrowOptions configures a generation pass.
type GrowOptions struct {
	// MaxSteps caps the number of frontier entries processed.
	// Zero means DefaultMaxSteps.
	MaxSteps int

	// Logger receives per-step diagnostics at debug level.
	// Nil means log.Default().
	Logger *log.Logger
}

// GrowResult is the outcome of a generation pass.
type GrowResult struct {
	Sequence []string // final point layout
	Links    []*Link  // links created, in creation order
	Steps    int      // frontier entries processed
	Unmet    int      // frontier entries that found no usable candidate
}

// Grow drives a Callback from a set of root sections until the frontier of
// open connectors is exhausted or the step budget runs out. Each step pops
// one open connector, asks the callback to Select a candidate section for
// it, and on success creates the link and queues the candidate's remaining
// connectors.
//
// A candidate section is expanded at most once: linking to an already-placed
// point is allowed, but its connectors are not re-queued, which keeps cyclic
// dictionaries from looping. Entries whose Select or MakeLink yields no
// result are dropped and counted in GrowResult.Unmet; per the protocol they
// are recoverable, never fatal.
func Grow(cb Callback, roots []Section, opts GrowOptions) (*GrowResult, error) {
	if len(roots) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "generation needs at least one root section")
	}
	if opts.MaxSteps <= 0 {
		opts.MaxSteps = DefaultMaxSteps
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	start := time.Now()
	cb.Clear()

	rootPoints := make([]string, len(roots))
	for i, s := range roots {
		rootPoints[i] = s.Point
	}
	cb.RootSet(rootPoints)

	type entry struct {
		section Section
		offset  int
	}

	var frontier []entry
	var order []string
	placed := make(map[string]bool)
	expanded := make(map[string]bool)

	place := func(point string) {
		if !placed[point] {
			placed[point] = true
			order = append(order, point)
		}
	}

	for _, s := range roots {
		place(s.Point)
		expanded[s.Point] = true
		for i := range s.Connectors {
			frontier = append(frontier, entry{s, i})
		}
	}

	result := &GrowResult{}
	for len(frontier) > 0 && result.Steps < opts.MaxSteps {
		e := frontier[0]
		frontier = frontier[1:]
		result.Steps++

		con := e.section.Connectors[e.offset]
		frame := Frame{
			Sequence: slices.Clone(order),
			Open:     len(frontier) + 1,
			Steps:    result.Steps,
		}

		candidate, ok := cb.Select(frame, e.section, e.offset, con)
		if !ok {
			logger.Debug("no candidate for connector",
				"point", e.section.Point, "connector", con.Type)
			result.Unmet++
			continue
		}
		if candidate.Point == e.section.Point {
			// A point cannot link to itself at the same position.
			result.Unmet++
			continue
		}

		link, ok := cb.MakeLink(con, con, e.section.Point, candidate.Point)
		if !ok || link == nil {
			result.Unmet++
			continue
		}
		result.Links = append(result.Links, link)
		place(candidate.Point)

		if !expanded[candidate.Point] {
			expanded[candidate.Point] = true
			consumed := false
			for i, c := range candidate.Connectors {
				// One connector of the mated type is consumed by this link.
				if !consumed && c.Type == con.Type {
					consumed = true
					continue
				}
				frontier = append(frontier, entry{candidate, i})
			}
		}
	}

	result.Sequence = order
	crossings := 0
	if p, ok := cb.(*Planar); ok {
		// The adapter's optimizer may have reordered the layout.
		result.Sequence = p.Sequence()
		crossings = p.Constraints().CrossingCount()
	}

	logger.Debug("generation pass finished",
		"points", len(result.Sequence), "links", len(result.Links),
		"steps", result.Steps, "unmet", result.Unmet)
	observability.Generation().OnGenerateComplete(
		len(result.Sequence), len(result.Links), crossings, time.Since(start))

	return result, nil
}
