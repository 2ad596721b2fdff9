package sink

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// pointsPerInch is the Graphviz unit conversion for node sizes.
const pointsPerInch = 72.0

// RenderDOT writes f as an undirected Graphviz graph with every circle pinned
// to its position. Graphviz has y pointing up, so y coordinates are negated.
func RenderDOT(f Frame) string {
	var buf bytes.Buffer
	buf.WriteString("graph onepercent {\n")
	fmt.Fprintf(&buf, "  graph [bgcolor=\"white\", inputscale=%g, splines=false, outputorder=nodesfirst];\n", pointsPerInch)
	buf.WriteString("  node [shape=circle, style=filled, fixedsize=true, label=\"\", penwidth=0];\n")
	buf.WriteString("\n")

	top := f.Width * 0.15
	// Corner anchors keep the drawing at the full viewport size.
	fmt.Fprintf(&buf, "  %q [pos=\"0,0!\", width=0.01, style=invis];\n", "origin")
	fmt.Fprintf(&buf, "  %q [pos=\"%s,%s!\", width=0.01, style=invis];\n", "extent", num(f.Width), num(-f.Height))
	if f.Label.Text != "" {
		fmt.Fprintf(&buf, "  %q [shape=plaintext, style=\"\", fixedsize=false, label=%q, fontcolor=%q, fontsize=%s, pos=\"%s,%s!\"];\n",
			"number", f.Label.Text, orDefault(f.Label.Color, "#000000"), num(max(12, top*0.45)), num(f.Width/2), num(-top*0.45))
	}
	if f.Label.Description != "" {
		fmt.Fprintf(&buf, "  %q [shape=plaintext, style=\"\", fixedsize=false, label=%q, fontcolor=\"#666666\", pos=\"%s,%s!\"];\n",
			"description", f.Label.Description, num(f.Width/2), num(-top*0.8))
	}
	buf.WriteString("\n")

	for _, fc := range f.Circles {
		c := fc.To
		if c.R <= 0 {
			continue
		}
		x, y := f.OriginX+c.CX, f.OriginY+c.CY
		fmt.Fprintf(&buf, "  \"c%d\" [pos=\"%s,%s!\", width=%s, fillcolor=%q];\n",
			fc.Index, num(x), num(-y), num(2*c.R/pointsPerInch), c.Fill)
	}
	buf.WriteString("}\n")
	return buf.String()
}

// GraphvizSVG is the RenderGraphviz output format used for neato renders.
const GraphvizSVG = string(graphviz.SVG)

// RenderGraphviz lays out RenderDOT(f) with neato and encodes it in format.
func RenderGraphviz(ctx context.Context, f Frame, format string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(RenderDOT(f)))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.Format(format), &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}
