package planar

import (
	"time"

	"github.com/planline/planline/pkg/observability"
)

// OptimizeSequence reorders the sequence with a greedy local search to reduce
// crossings among committed links. Each sweep tries swapping every adjacent
// pair of points and keeps a swap only when it strictly reduces the crossing
// count; sweeps repeat until one completes with no improving swap, or a
// budget of n² sweeps runs out. Stored link positions are updated in lockstep
// with every kept swap, so links keep connecting the same points.
//
// The crossing count is monotonically non-increasing across calls. Because
// optimal crossing minimization by reordering is NP-hard, this heuristic
// never guarantees zero crossings. A sequence of length <= 1 is a no-op.
func (c *Constraints) OptimizeSequence() {
	if len(c.seq) <= 1 {
		return
	}

	start := time.Now()
	before := countCrossings(c.links)
	current := before
	maxSweeps := len(c.seq) * len(c.seq)
	sweeps := 0

	improved := true
	for improved && sweeps < maxSweeps {
		improved = false
		sweeps++

		for i := 0; i < len(c.seq)-1; i++ {
			c.swapAdjacent(i)
			if n := countCrossings(c.links); n < current {
				current = n
				improved = true
			} else {
				c.swapAdjacent(i)
			}
		}
	}

	c.logger.Debug("sequence optimization finished",
		"sweeps", sweeps, "before", before, "after", current)
	observability.Constraints().OnOptimize(before, current, sweeps, time.Since(start))
}

// swapAdjacent exchanges the points at positions i and i+1, updating the
// position index and every committed link endpoint that references either
// position. Calling it twice with the same i restores the previous state.
func (c *Constraints) swapAdjacent(i int) {
	c.seq[i], c.seq[i+1] = c.seq[i+1], c.seq[i]
	c.pos[c.seq[i]] = i
	c.pos[c.seq[i+1]] = i + 1

	for k, l := range c.links {
		li, lj := remap(l.I, i), remap(l.J, i)
		if li != l.I || lj != l.J {
			c.links[k] = NewLink(li, lj)
		}
	}
}

// remap translates a link endpoint across a swap of positions i and i+1.
func remap(p, i int) int {
	switch p {
	case i:
		return i + 1
	case i + 1:
		return i
	default:
		return p
	}
}
