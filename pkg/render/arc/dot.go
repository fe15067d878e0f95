// Package arc renders point layouts as arc diagrams.
package arc

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/planline/planline/pkg/layout"
)

// Options configures arc diagram rendering.
type Options struct {
	// Detailed includes connector types in edge labels.
	Detailed bool

	// Highlight colors links involved in a crossing red.
	// Defaults to true via DefaultOptions.
	Highlight bool
}

// DefaultOptions returns the rendering defaults used by the CLI.
func DefaultOptions() Options {
	return Options{Highlight: true}
}

// ToDOT converts a layout to Graphviz DOT format. The point sequence is
// pinned left to right on a single rank by an invisible ordering chain, and
// links become undirected curved edges above it. The resulting DOT string
// can be rendered with [RenderSVG] or [RenderPNG].
func ToDOT(l *layout.Layout, opts Options) string {
	crossing := crossingSet(l, opts.Highlight)

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=curved;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [dir=none];\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	for _, p := range l.Sequence {
		fmt.Fprintf(&buf, "  %q;\n", p)
	}

	// Invisible chain keeps the baseline in sequence order.
	buf.WriteString("\n  { rank=same;\n")
	for i := 1; i < len(l.Sequence); i++ {
		fmt.Fprintf(&buf, "    %q -> %q [style=invis, weight=100];\n",
			l.Sequence[i-1], l.Sequence[i])
	}
	buf.WriteString("  }\n\n")

	for _, ln := range l.Links {
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", ln.From, ln.To, edgeAttrs(ln, crossing, opts))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func crossingSet(l *layout.Layout, highlight bool) map[string]bool {
	if !highlight {
		return nil
	}
	set := make(map[string]bool)
	for _, pair := range l.Report().Crossing {
		set[pair[0]] = true
		set[pair[1]] = true
	}
	return set
}

func edgeAttrs(ln layout.Link, crossing map[string]bool, opts Options) string {
	attrs := "constraint=false"
	if opts.Detailed && ln.Type != "" {
		attrs += fmt.Sprintf(", label=%q, fontsize=16", ln.Type)
	}
	if crossing[ln.From+"-"+ln.To] || crossing[ln.To+"-"+ln.From] {
		attrs += ", color=red, penwidth=2"
	} else if ln.NonPlanar {
		attrs += ", style=dashed"
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the svg root tag so the diagram scales to its
// container regardless of the DPI graphviz assumed.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
