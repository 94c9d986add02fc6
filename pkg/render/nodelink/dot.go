package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/treemap/pkg/hierarchy"
	"github.com/matzehuels/treemap/pkg/render"
	"github.com/matzehuels/treemap/pkg/render/palette"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the category and value to leaf labels, and the aggregate
	// value to internal nodes.
	Detailed bool

	// Colors fills leaves by category. Leaves are white when unset.
	Colors *palette.Assignment
}

// ToDOT converts the tree rooted at root to Graphviz DOT. Nodes are
// identified by their pre-order index since names need not be unique.
func ToDOT(root *hierarchy.Node, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.2;\n")
	buf.WriteString("\n")

	if root == nil {
		buf.WriteString("}\n")
		return buf.String()
	}

	ids := make(map[*hierarchy.Node]string)
	var edges []string
	root.Walk(func(n *hierarchy.Node, _ int) bool {
		id := "n" + strconv.Itoa(len(ids))
		ids[n] = id
		fmt.Fprintf(&buf, "  %s [%s];\n", id, strings.Join(fmtAttrs(n, opts), ", "))
		return true
	})
	root.Walk(func(n *hierarchy.Node, _ int) bool {
		for _, c := range n.Children {
			edges = append(edges, fmt.Sprintf("  %s -> %s;\n", ids[n], ids[c]))
		}
		return true
	})

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *hierarchy.Node, detailed bool) string {
	if !detailed {
		return n.Name
	}
	if n.IsLeaf() {
		return fmt.Sprintf("%s\n%s\nUS$%s", n.Name, n.Category, hierarchy.FormatValue(n.Value))
	}
	return fmt.Sprintf("%s\nUS$%s", n.Name, hierarchy.FormatValue(n.Sum()))
}

func fmtAttrs(n *hierarchy.Node, opts Options) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, opts.Detailed))}
	switch {
	case !n.IsLeaf():
		attrs = append(attrs, "style=\"rounded,filled,bold\"", "fillcolor=\"#eeeeee\"")
	case opts.Colors != nil:
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", opts.Colors.Color(n.Category)))
	}
	return attrs
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
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz root element (pt units, offset
// viewBox) with a plain one sized to the drawing.
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

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
