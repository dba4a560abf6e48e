// Package render turns a document tree into Graphviz visualizations
// for inspection and debugging.
//
// The hierarchy view makes transform results easy to eyeball: ghosts
// are dashed, instances double-bordered, containers plain boxes. Use
// [ToDOT] to get the DOT source and [RenderSVG] to rasterize it.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/ghostify/pkg/doc"
)

// Options configures hierarchy rendering.
type Options struct {
	// Detailed includes node geometry and text attributes in labels.
	// When false, only the name and kind are shown.
	Detailed bool
}

// ToDOT converts a document tree to Graphviz DOT format.
// The resulting DOT string can be rendered with [RenderSVG].
//
// Ghost rectangles (a name prefixed "Ghost_") are drawn with dashed
// outlines and grey fill so a transformed document reads at a glance.
func ToDOT(d *doc.Document, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	if d.Root != nil {
		writeNode(&buf, d.Root, opts)
		buf.WriteString("\n")
		writeEdges(&buf, d.Root)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeNode(buf *bytes.Buffer, n *doc.Node, opts Options) {
	fmt.Fprintf(buf, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(n, opts), ", "))
	for _, c := range n.Children() {
		writeNode(buf, c, opts)
	}
}

func writeEdges(buf *bytes.Buffer, n *doc.Node) {
	for _, c := range n.Children() {
		fmt.Fprintf(buf, "  %q -> %q;\n", n.ID, c.ID)
		writeEdges(buf, c)
	}
}

func nodeAttrs(n *doc.Node, opts Options) []string {
	attrs := []string{fmt.Sprintf("label=%q", nodeLabel(n, opts.Detailed))}
	switch {
	case strings.HasPrefix(n.Name, "Ghost_"):
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	case n.Kind == doc.KindInstance:
		attrs = append(attrs, "peripheries=2")
	case n.Kind == doc.KindText:
		attrs = append(attrs, "fillcolor=lightyellow")
	}
	return attrs
}

func nodeLabel(n *doc.Node, detailed bool) string {
	label := n.Name
	if label == "" {
		label = n.ID
	}
	label += "\n" + string(n.Kind)
	if !detailed {
		return label
	}

	parts := []string{fmt.Sprintf("%.0fx%.0f @ %.0f,%.0f", n.Width, n.Height, n.X, n.Y)}
	if n.Kind == doc.KindText {
		parts = append(parts, fmt.Sprintf("chars: %d", n.CharacterCount()))
	}
	if n.Opacity > 0 && n.Opacity < 1 {
		parts = append(parts, fmt.Sprintf("opacity: %.2f", n.Opacity))
	}
	return label + "\n" + strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
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
	return buf.Bytes(), nil
}
