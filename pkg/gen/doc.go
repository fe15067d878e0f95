// Package gen provides the generation-callback protocol and a planarity-aware
// adapter over it.
//
// # Overview
//
// A generation pass incrementally builds a graph from sections: records that
// pair a point (a node identifier, e.g. a word) with the typed connector
// slots it wants to fill. An external driver walks the frontier of open
// connectors and asks a [Callback] to select candidate sections and create
// links. The [Planar] adapter interposes planarity enforcement between the
// driver and either a wrapped inner Callback or a plain [Dictionary] of
// sections, so that links never cross when the generated points are laid out
// on a line.
//
// # Protocol
//
// [Callback] mirrors the generation protocol with six operations: Clear,
// RootSet, NextRoot, Joints, Select, and MakeLink. Select and MakeLink report
// "no result" through their boolean return; the driver responds by trying a
// different candidate or abandoning that frontier entry.
//
// # Planarity Enforcement
//
// [Planar] keeps a [planar.Constraints] store synchronized with every point
// the driver introduces, appending new points to the tail of the sequence.
// Before a selection or link is allowed through, the candidate point pair is
// tested against the store:
//
//   - strict mode (default): non-planar proposals are rejected outright
//   - lenient mode: the proposal goes through with a warning and the created
//     link is flagged NonPlanar
//
// Select checks only the defining point of each section. Sections that
// ultimately connect through more than one point are not fully checked; this
// is a known limitation of the check, not a guarantee.
//
// With auto-optimization enabled (default), a link commit that leaves the
// store with a non-zero crossing count triggers
// [planar.Constraints.OptimizeSequence].
//
// # Driving a Pass
//
// [Grow] is a bounded frontier walker for running a complete pass without an
// external driver: it seeds the callback with root sections and keeps
// selecting and linking until the frontier empties or a step budget runs out.
//
// # Concurrency
//
// Callbacks, dictionaries under mutation, and Grow are single-session,
// single-goroutine constructs. A loaded Dictionary is read-only and may be
// shared across sessions.
package gen
