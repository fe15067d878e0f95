package gen

import (
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/planline/planline/pkg/observability"
	"github.com/planline/planline/pkg/planar"
)

// Planar interposes planarity enforcement between a generation driver and
// either a wrapped inner Callback (decorator form, [NewPlanar]) or a plain
// Dictionary (standalone form, [NewPlanarDict]). The variant is fixed at
// construction.
//
// Planar keeps a constraint store synchronized with every point the driver
// introduces and consults it on every proposed selection and link. It never
// mutates the inner Callback or the Dictionary.
//
// Not safe for concurrent use; one Planar serves one generation session.
type Planar struct {
	inner Callback
	dict  *Dictionary

	cons *planar.Constraints
	seq  []string

	strict  bool
	autoOpt bool
	logger  *log.Logger
}

// Option configures a Planar adapter.
type Option func(*Planar)

// WithStrict sets strict planarity enforcement. When strict (the default),
// non-planar proposals are rejected outright; otherwise they are allowed
// through with a warning and flagged on the created link.
func WithStrict(strict bool) Option {
	return func(p *Planar) { p.strict = strict }
}

// WithAutoOptimize sets automatic sequence optimization. When enabled (the
// default), a link commit that leaves crossings in the store triggers a
// local-search reordering pass.
func WithAutoOptimize(auto bool) Option {
	return func(p *Planar) { p.autoOpt = auto }
}

// WithLogger sets the logger for warnings and rejection diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(p *Planar) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewPlanar creates a Planar adapter that decorates an inner Callback.
// All protocol operations delegate to inner after planarity bookkeeping.
func NewPlanar(inner Callback, opts ...Option) *Planar {
	p := newPlanar(opts)
	p.inner = inner
	return p
}

// NewPlanarDict creates a standalone Planar adapter over a dictionary.
// Select falls back to the dictionary's first entry matching the requested
// connector type; the remaining protocol operations have degenerate defaults.
func NewPlanarDict(dict *Dictionary, opts ...Option) *Planar {
	p := newPlanar(opts)
	p.dict = dict
	return p
}

func newPlanar(opts []Option) *Planar {
	p := &Planar{
		cons:    planar.New(),
		strict:  true,
		autoOpt: true,
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.cons.SetLogger(p.logger)
	return p
}

// Strict reports whether non-planar proposals are rejected outright.
func (p *Planar) Strict() bool { return p.strict }

// AutoOptimize reports whether sequence optimization runs after link commits
// that leave crossings.
func (p *Planar) AutoOptimize() bool { return p.autoOpt }

// Constraints exposes the underlying constraint store for advanced usage and
// diagnostics. Mutating it directly bypasses the adapter's bookkeeping.
func (p *Planar) Constraints() *planar.Constraints { return p.cons }

// Sequence returns a copy of the current point layout.
func (p *Planar) Sequence() []string { return p.cons.Sequence() }

// SetInitialSequence establishes the point order before a pass begins (for
// language generation, the word order). Any previously committed links are
// discarded with the old layout.
func (p *Planar) SetInitialSequence(points []string) {
	p.seq = append([]string(nil), points...)
	p.cons.SetSequence(points)
}

// Clear resets the constraint store and the working sequence, and forwards
// the reset to the inner Callback if one is wrapped.
func (p *Planar) Clear() {
	p.cons.Clear()
	p.seq = nil

	if p.inner != nil {
		p.inner.Clear()
	}
}

// RootSet registers root points, appending any new ones to the sequence in
// encounter order, and forwards to the inner Callback if one is wrapped.
func (p *Planar) RootSet(points []string) {
	p.ensurePoints(points)

	if p.inner != nil {
		p.inner.RootSet(points)
	}
}

// NextRoot delegates to the inner Callback. The adapter has no independent
// notion of root scheduling; standalone it always reports no more roots.
func (p *Planar) NextRoot() []string {
	if p.inner != nil {
		return p.inner.NextRoot()
	}
	return nil
}

// Joints delegates to the inner Callback; standalone it knows no compatible
// joints and returns an empty slice.
func (p *Planar) Joints(connector Connector) []Connector {
	if p.inner != nil {
		return p.inner.Joints(connector)
	}
	return nil
}

// Select obtains a candidate section from the inner Callback or, standalone,
// the dictionary's first match for the requested connector type. The
// candidate's defining point and the requesting section's defining point are
// registered in the sequence and tested for planarity: a non-planar pair is
// rejected in strict mode and allowed with a warning otherwise.
//
// Only the defining point of each section is checked; see the package
// documentation for the limits of that simplification.
func (p *Planar) Select(frame Frame, from Section, offset int, to Connector) (Section, bool) {
	var selected Section
	var ok bool

	switch {
	case p.inner != nil:
		selected, ok = p.inner.Select(frame, from, offset, to)
	case p.dict != nil:
		if matches := p.dict.Sections(to.Type); len(matches) > 0 {
			selected, ok = matches[0], true
		}
	}

	if !ok {
		observability.Generation().OnSelect(to.Type, false)
		return Section{}, false
	}

	p.ensureSectionPoints(from)
	p.ensureSectionPoints(selected)

	if from.Point != "" && selected.Point != "" &&
		!p.cons.IsPlanarLink(from.Point, selected.Point) {
		if p.strict {
			p.logger.Debug("rejecting selection: would violate planarity",
				"from", from.Point, "to", selected.Point, "connector", to.Type)
			observability.Generation().OnSelect(to.Type, false)
			return Section{}, false
		}
		p.logger.Warn("allowing non-planar selection",
			"from", from.Point, "to", selected.Point, "connector", to.Type)
	}

	observability.Generation().OnSelect(to.Type, true)
	return selected, true
}

// MakeLink re-checks planarity for the literal point pair and creates the
// link. In strict mode a non-planar pair yields no result and no state
// change; in lenient mode the link is created anyway and flagged NonPlanar.
//
// The committed link is registered with the constraint store. If the store
// rejects a link the adapter believed valid, the failure is logged but the
// already-created link is returned as-is: not breaking the outer generation
// pass takes priority over absolute invariant enforcement. When
// auto-optimization is on and the commit leaves crossings, the sequence is
// re-optimized and the working copy refreshed.
func (p *Planar) MakeLink(fromCon, toCon Connector, fromPnt, toPnt string) (*Link, bool) {
	nonPlanar := false
	if !p.cons.IsPlanarLink(fromPnt, toPnt) {
		if p.strict {
			p.logger.Warn("cannot create non-planar link",
				"from", fromPnt, "to", toPnt)
			return nil, false
		}
		p.logger.Warn("creating non-planar link", "from", fromPnt, "to", toPnt)
		nonPlanar = true
	}

	if !p.cons.AddLink(fromPnt, toPnt) {
		p.logger.Warn("constraint store rejected link registration",
			"from", fromPnt, "to", toPnt)
	}

	var link *Link
	var ok bool
	if p.inner != nil {
		link, ok = p.inner.MakeLink(fromCon, toCon, fromPnt, toPnt)
		if ok && link != nil && nonPlanar {
			link.NonPlanar = true
		}
	} else {
		link = &Link{
			ID:        uuid.New(),
			From:      fromPnt,
			To:        toPnt,
			FromCon:   fromCon,
			ToCon:     toCon,
			NonPlanar: nonPlanar,
		}
		ok = true
	}

	observability.Generation().OnMakeLink(nonPlanar)

	if p.autoOpt && p.cons.CrossingCount() > 0 {
		p.cons.OptimizeSequence()
		p.seq = p.cons.Sequence()
	}

	return link, ok
}

// ensurePoints appends every point not yet positioned to the tail of the
// working sequence and registers it with the constraint store. Placing a new
// point adjacent to the point it is about to connect to would reduce future
// crossings; that smarter insertion is an extension point, and the current
// policy always appends.
func (p *Planar) ensurePoints(points []string) {
	for _, pnt := range points {
		if _, ok := p.cons.Position(pnt); !ok {
			p.seq = append(p.seq, pnt)
			p.cons.AppendPoint(pnt)
		}
	}
}

func (p *Planar) ensureSectionPoints(s Section) {
	if s.Point != "" {
		p.ensurePoints([]string{s.Point})
	}
}

// Ensure Planar implements Callback.
var _ Callback = (*Planar)(nil)
