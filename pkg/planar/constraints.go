package planar

import (
	"slices"

	"github.com/charmbracelet/log"

	"github.com/planline/planline/pkg/observability"
)

// Constraints maintains planarity constraints over an ordered sequence of
// points. It owns the sequence, a position index, and the set of committed
// links, and answers whether candidate links can be added without crossing
// an existing link.
//
// The zero value is not usable - use New to create a valid instance.
// Constraints is not safe for concurrent use; see the package documentation.
type Constraints struct {
	seq    []string
	pos    map[string]int
	links  []Link
	logger *log.Logger
}

// New creates an empty constraint store.
// Warnings (e.g., planarity queries for unknown points) go to log.Default();
// use SetLogger to direct them elsewhere.
func New() *Constraints {
	return &Constraints{
		pos:    make(map[string]int),
		logger: log.Default(),
	}
}

// SetLogger replaces the logger used for warnings and optimizer diagnostics.
// A nil logger restores log.Default().
func (c *Constraints) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.Default()
	}
	c.logger = l
}

// Clear empties the sequence, the position index, and all committed links.
func (c *Constraints) Clear() {
	c.seq = nil
	c.pos = make(map[string]int)
	c.links = nil
}

// SetSequence replaces the sequence wholesale and rebuilds the position index.
// All committed links are discarded: links are stored by position, and a new
// layout invalidates prior positions. Callers must re-add any links they want
// preserved.
func (c *Constraints) SetSequence(points []string) {
	c.seq = slices.Clone(points)
	c.rebuildIndex()
	c.links = nil
}

// AppendPoint adds a point to the end of the sequence and records its
// position. Appending a point that is already in the sequence is a caller
// error with undefined results; check Position first.
func (c *Constraints) AppendPoint(point string) {
	c.seq = append(c.seq, point)
	c.pos[point] = len(c.seq) - 1
}

// Sequence returns a copy of the current point order.
func (c *Constraints) Sequence() []string {
	return slices.Clone(c.seq)
}

// Position returns the zero-based position of a point in the sequence,
// or false if the point is not present. Lookup is O(1).
func (c *Constraints) Position(point string) (int, bool) {
	p, ok := c.pos[point]
	return p, ok
}

// IsPlanarLink reports whether a link between the two points could be added
// without crossing any committed link. A point absent from the sequence is
// treated as "cannot be satisfied": the query logs a warning and returns
// false rather than failing.
//
// Cost is O(L) in the number of committed links.
func (c *Constraints) IsPlanarLink(from, to string) bool {
	planar := c.isPlanarLink(from, to)
	observability.Constraints().OnPlanarityCheck(planar)
	return planar
}

func (c *Constraints) isPlanarLink(from, to string) bool {
	fromPos, okFrom := c.pos[from]
	toPos, okTo := c.pos[to]
	if !okFrom || !okTo {
		c.logger.Warn("planarity check on point not in sequence", "from", from, "to", to)
		return false
	}

	candidate := NewLink(fromPos, toPos)
	for _, l := range c.links {
		if Crossing(candidate, l) {
			return false
		}
	}
	return true
}

// AddLink commits a link between the two points if it is planar.
// The planarity check is repeated here rather than trusted from an earlier
// IsPlanarLink call, since the sequence may have changed in between. Returns
// true on commit; on a non-planar or unknown-point candidate it makes no
// state change and returns false.
func (c *Constraints) AddLink(from, to string) bool {
	if !c.isPlanarLink(from, to) {
		observability.Constraints().OnLinkRejected(from, to)
		return false
	}

	// isPlanarLink verified both positions exist.
	c.links = append(c.links, NewLink(c.pos[from], c.pos[to]))
	observability.Constraints().OnLinkCommitted(from, to)
	return true
}

// RemoveLink deletes every committed link matching the points' current
// positions. At most one match is expected, but duplicates are removed
// too. Unknown points are a no-op.
func (c *Constraints) RemoveLink(from, to string) {
	fromPos, okFrom := c.pos[from]
	toPos, okTo := c.pos[to]
	if !okFrom || !okTo {
		return
	}

	c.links = slices.DeleteFunc(c.links, func(l Link) bool {
		return l.matches(fromPos, toPos)
	})
}

// Links returns a copy of all committed links as normalized position pairs.
func (c *Constraints) Links() []Link {
	return slices.Clone(c.links)
}

// LinkCount returns the number of committed links.
func (c *Constraints) LinkCount() int { return len(c.links) }

// IsPlanar reports whether no pair of committed links crosses.
// This is an O(L²) diagnostic; the incremental IsPlanarLink check keeps the
// store planar on the hot path.
func (c *Constraints) IsPlanar() bool {
	return countCrossings(c.links) == 0
}

// CrossingCount returns the number of unordered pairs of committed links
// that cross. O(L²).
func (c *Constraints) CrossingCount() int {
	return countCrossings(c.links)
}

// CrossingLinks returns every committed link that participates in at least
// one crossing, as point pairs under the current sequence, deduplicated and
// sorted for deterministic output.
func (c *Constraints) CrossingLinks() [][2]string {
	var crossing [][2]string
	for i := 0; i < len(c.links); i++ {
		for j := i + 1; j < len(c.links); j++ {
			if Crossing(c.links[i], c.links[j]) {
				crossing = append(crossing, c.linkPoints(c.links[i]), c.linkPoints(c.links[j]))
			}
		}
	}

	slices.SortFunc(crossing, func(a, b [2]string) int {
		if a[0] != b[0] {
			if a[0] < b[0] {
				return -1
			}
			return 1
		}
		if a[1] < b[1] {
			return -1
		}
		if a[1] > b[1] {
			return 1
		}
		return 0
	})
	return slices.Compact(crossing)
}

func (c *Constraints) linkPoints(l Link) [2]string {
	return [2]string{c.seq[l.I], c.seq[l.J]}
}

func (c *Constraints) rebuildIndex() {
	c.pos = make(map[string]int, len(c.seq))
	for i, p := range c.seq {
		c.pos[p] = i
	}
}
