package gen

import (
	"github.com/google/uuid"
)

// Connector is a typed connection slot on a section. Two sections join by
// mating connectors of the same type.
type Connector struct {
	Type string `json:"type"`
}

// Section pairs a point with the ordered list of connector slots it wants to
// fill. The Point is the section's defining element; connectors are consumed
// as links to other sections are created.
type Section struct {
	Point      string      `json:"point"`
	Connectors []Connector `json:"connectors,omitempty"`
}

// IsZero reports whether the section is the zero value ("no section").
func (s Section) IsZero() bool {
	return s.Point == "" && len(s.Connectors) == 0
}

// Frame is a read-only snapshot of the driver's progress, handed to Select so
// implementations can weigh candidates against the pass so far.
type Frame struct {
	Sequence []string // points placed so far, in layout order
	Open     int      // open connectors remaining on the frontier
	Steps    int      // frontier entries processed so far
}

// Link is the record of a created connection between two points.
type Link struct {
	ID      uuid.UUID `json:"id"`
	From    string    `json:"from"`
	To      string    `json:"to"`
	FromCon Connector `json:"from_connector"`
	ToCon   Connector `json:"to_connector"`

	// NonPlanar marks a link that was allowed through in lenient mode even
	// though it crosses another link.
	NonPlanar bool `json:"non_planar,omitempty"`
}

// Callback is the generation protocol. The driver owns the generation loop;
// a Callback answers its queries and performs link creation.
//
// Select and MakeLink return false to signal "no result"; the driver then
// retries with a different candidate or drops the frontier entry. No Callback
// method returns an error: per this protocol, every failure is local and
// recoverable.
type Callback interface {
	// Clear resets all per-pass state.
	Clear()

	// RootSet registers the initial root points for a generation pass.
	RootSet(points []string)

	// NextRoot returns the next batch of root points to expand, or an empty
	// slice when there are no more roots.
	NextRoot() []string

	// Joints returns the connectors that can mate with the given connector,
	// or an empty slice when none are known.
	Joints(connector Connector) []Connector

	// Select picks a candidate section whose connectors can satisfy the
	// requested connector, given the section and connector offset the
	// request originates from. Returns false when no candidate is available.
	Select(frame Frame, from Section, offset int, to Connector) (Section, bool)

	// MakeLink creates a link joining two points through the given connector
	// pair. Returns false when the link cannot be created.
	MakeLink(fromCon, toCon Connector, fromPnt, toPnt string) (*Link, bool)
}
