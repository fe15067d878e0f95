package arc

import (
	"bytes"
	"slices"
	"strings"

	"github.com/planline/planline/pkg/layout"
)

// Text renders a layout as a plain-text arc diagram for terminal output.
// The sequence sits on the bottom line and links are drawn as rectangular
// arcs above it, nested by span:
//
//	 +----------+
//	 |   +---+  |
//	the cat sat on mat
//
// Links whose arcs cross show as a vertical bar punching through a
// horizontal run.
func Text(l *layout.Layout) string {
	if len(l.Sequence) == 0 {
		return ""
	}
	line := strings.Join(l.Sequence, " ")

	centers := make(map[string]int, len(l.Sequence))
	col := 0
	for _, p := range l.Sequence {
		centers[p] = col + (len(p)-1)/2
		col += len(p) + 1
	}

	type span struct{ lo, hi int }
	spans := make([]span, 0, len(l.Links))
	for _, ln := range l.Links {
		a, okA := centers[ln.From]
		b, okB := centers[ln.To]
		if !okA || !okB || a == b {
			continue
		}
		if a > b {
			a, b = b, a
		}
		spans = append(spans, span{a, b})
	}
	if len(spans) == 0 {
		return line + "\n"
	}

	// Narrow arcs sit low; an arc is raised above every arc its span
	// overlaps.
	slices.SortFunc(spans, func(x, y span) int {
		return (x.hi - x.lo) - (y.hi - y.lo)
	})
	levels := make([]int, len(spans))
	maxLevel := 0
	for i, s := range spans {
		level := 1
		for j := 0; j < i; j++ {
			if s.lo <= spans[j].hi && spans[j].lo <= s.hi && levels[j] >= level {
				level = levels[j] + 1
			}
		}
		levels[i] = level
		if level > maxLevel {
			maxLevel = level
		}
	}

	grid := make([][]byte, maxLevel)
	for i := range grid {
		grid[i] = bytes.Repeat([]byte(" "), len(line))
	}

	// Drawing narrow-first lets wider arcs stamp their verticals over
	// horizontals below, which is exactly where a crossing shows up.
	for i, s := range spans {
		r := maxLevel - levels[i]
		for c := s.lo + 1; c < s.hi; c++ {
			grid[r][c] = '-'
		}
		grid[r][s.lo], grid[r][s.hi] = '+', '+'
		for rr := r + 1; rr < maxLevel; rr++ {
			for _, c := range []int{s.lo, s.hi} {
				if grid[rr][c] != '+' {
					grid[rr][c] = '|'
				}
			}
		}
	}

	var b strings.Builder
	for _, row := range grid {
		b.Write(bytes.TrimRight(row, " "))
		b.WriteByte('\n')
	}
	b.WriteString(line)
	b.WriteByte('\n')
	return b.String()
}
