package layout

import (
	"github.com/planline/planline/pkg/planar"
)

// Report summarizes the planarity of a layout.
type Report struct {
	Planar    bool        `json:"planar"`
	LinkCount int         `json:"link_count"`
	Crossings int         `json:"crossings"`
	Crossing  [][2]string `json:"crossing_links,omitempty"`
}

// Report evaluates the layout and returns its crossing summary. Unlike the
// constraint store it accepts arbitrary link sets, including non-planar
// ones, so it can audit layouts produced elsewhere. The layout must be
// valid; call [Layout.Validate] first for untrusted input.
func (l *Layout) Report() Report {
	pos := make(map[string]int, len(l.Sequence))
	for i, p := range l.Sequence {
		pos[p] = i
	}

	links := make([]planar.Link, 0, len(l.Links))
	for _, ln := range l.Links {
		i, okFrom := pos[ln.From]
		j, okTo := pos[ln.To]
		if !okFrom || !okTo {
			continue
		}
		links = append(links, planar.NewLink(i, j))
	}

	rep := Report{LinkCount: len(links)}
	for a := 0; a < len(links); a++ {
		for b := a + 1; b < len(links); b++ {
			if planar.Crossing(links[a], links[b]) {
				rep.Crossings++
				rep.Crossing = append(rep.Crossing, [2]string{
					l.Sequence[links[a].I] + "-" + l.Sequence[links[a].J],
					l.Sequence[links[b].I] + "-" + l.Sequence[links[b].J],
				})
			}
		}
	}
	rep.Planar = rep.Crossings == 0
	return rep
}

// Constraints builds a fresh constraint store seeded with the layout's
// sequence. Links are committed through the store's planarity gate, so a
// non-planar layout yields a store holding only the links that fit; use
// [Layout.Report] when the full link set matters.
func (l *Layout) Constraints() *planar.Constraints {
	c := planar.New()
	c.SetSequence(l.Sequence)
	for _, ln := range l.Links {
		c.AddLink(ln.From, ln.To)
	}
	return c
}
