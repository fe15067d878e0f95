// Package layout provides JSON import and export for point layouts.
//
// # Overview
//
// A layout is the serialized form of a constraint-store session: an ordered
// point sequence plus the links drawn between points. The format is designed
// for:
//
//   - Checking externally produced layouts for planarity violations
//   - Persisting generation results for later rendering or inspection
//   - Round-trip preservation: export, re-import, and re-check identically
//
// # JSON Format
//
// The format has a required "sequence" array and an optional "links" array:
//
//	{
//	  "sequence": ["the", "cat", "sat", "on", "mat"],
//	  "links": [
//	    {"from": "cat", "to": "sat"},
//	    {"from": "the", "to": "on", "type": "D"}
//	  ]
//	}
//
// Link fields "from" and "to" are required and must name points present in
// the sequence. Optional fields:
//   - type: connector type that mated the link
//   - non_planar: whether the link was committed despite a crossing
//
// # Import
//
// Use [ImportJSON] to read a layout from a file path, or [ReadJSON] to read
// from any io.Reader. Both validate the structure: duplicate sequence points
// and links referencing unknown points are errors, reported with the point
// or link that caused them.
//
// # Checking
//
// [Layout.Report] evaluates the layout without modifying it and returns the
// crossing count and the offending link pairs. Unlike the constraint store,
// which refuses to commit a crossing link, Report accepts any link set; it
// is the tool for auditing layouts produced elsewhere.
//
// # Concurrency
//
// All functions create independent values; a Layout is safe for concurrent
// reads but not concurrent modification.
package layout
