package planar

// Link is a committed connection between two positions in the sequence.
// Links are normalized so that I < J; use NewLink to construct one.
type Link struct {
	I int // Left endpoint position
	J int // Right endpoint position
}

// NewLink creates a normalized link between two sequence positions.
// The endpoints are swapped if necessary so that I < J.
func NewLink(a, b int) Link {
	if a > b {
		a, b = b, a
	}
	return Link{I: a, J: b}
}

// matches reports whether the link connects the given unordered position pair.
func (l Link) matches(a, b int) bool {
	if a > b {
		a, b = b, a
	}
	return l.I == a && l.J == b
}

// Crossing reports whether two links cross when the sequence is drawn as a
// line with links as arcs above it. Two links cross iff exactly one endpoint
// of one lies strictly between the endpoints of the other:
//
//	a.I < b.I < a.J < b.J  or  b.I < a.I < b.J < a.J
//
// Links that share an endpoint never cross. The test is symmetric in its
// arguments.
func Crossing(a, b Link) bool {
	return (a.I < b.I && b.I < a.J && a.J < b.J) ||
		(b.I < a.I && a.I < b.J && b.J < a.J)
}

// countCrossings counts unordered pairs of crossing links in O(L²).
// Link counts are bounded by generation length, so the quadratic pair scan
// stays cheap in practice.
func countCrossings(links []Link) int {
	count := 0
	for i := 0; i < len(links); i++ {
		for j := i + 1; j < len(links); j++ {
			if Crossing(links[i], links[j]) {
				count++
			}
		}
	}
	return count
}
