// Package planar provides incremental planarity constraints for graphs whose
// nodes occupy fixed positions along a linear order.
//
// # Overview
//
// When a graph is drawn with its nodes on a line and its links as arcs above
// that line, two links cross exactly when their endpoint intervals strictly
// interleave. This matters for natural language generation, where word order
// is fixed and dependency links drawn above the sentence must not cross.
//
// The [Constraints] store owns an ordered sequence of points, a position
// index, and the set of committed links. It answers planarity queries about
// candidate links, commits links that pass the check, and offers a bounded
// local-search heuristic to reorder the sequence and reduce crossings among
// links already committed.
//
// # Basic Usage
//
// Create a store with [New], establish the point order with
// [Constraints.SetSequence] or [Constraints.AppendPoint], then test and
// commit links:
//
//	c := planar.New()
//	c.SetSequence([]string{"the", "cat", "sat"})
//	c.AddLink("the", "cat") // true
//	c.AddLink("cat", "sat") // true
//	c.IsPlanar()            // true
//
// # Crossing Test
//
// Links are stored as normalized position pairs (i < j). Two links cross iff
// exactly one endpoint of one lies strictly between the endpoints of the
// other: i1 < i2 < j1 < j2 or i2 < i1 < j2 < j1. Links that share an endpoint
// never cross. The per-candidate check in [Constraints.IsPlanarLink] is
// linear in the number of committed links; the global [Constraints.IsPlanar]
// check is quadratic and intended for diagnostics.
//
// # Sequence Changes
//
// Links are stored by sequence offset, not by point identity. Replacing the
// sequence with [Constraints.SetSequence] therefore discards all committed
// links rather than re-mapping them; callers that change the layout must
// re-add the links they want preserved. [Constraints.OptimizeSequence] is the
// one exception: it reorders points and updates the stored link positions in
// lockstep.
//
// # Optimization
//
// Optimal crossing minimization by reordering is NP-hard, so
// [Constraints.OptimizeSequence] runs a greedy adjacent-swap local search:
// each sweep tries swapping every adjacent pair and keeps a swap only when it
// strictly reduces the crossing count. Sweeps repeat until none improves or a
// budget of n² sweeps is exhausted. The crossing count never increases; zero
// crossings are not guaranteed.
//
// # Concurrency
//
// Constraints instances are not safe for concurrent use. A store is meant to
// be exclusively owned by one generation session and driven by a single
// goroutine; create a fresh store per session.
package planar
