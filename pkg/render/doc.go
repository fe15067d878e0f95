// Package render and its subpackages turn point layouts into visual output.
//
// The [arc] subpackage draws arc diagrams: the point sequence on a single
// baseline with links drawn as arcs above it, the standard way to look at
// planarity. It produces Graphviz DOT, SVG and PNG output plus a plain-text
// rendering for terminals.
//
// [arc]: github.com/planline/planline/pkg/render/arc
package render
