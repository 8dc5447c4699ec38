package diagram

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/dressform/pkg/draft"
	"github.com/matzehuels/dressform/pkg/render"
)

// Options configures diagram rendering.
type Options struct {
	// Detailed adds the formula and computed value to node labels.
	Detailed bool
}

// ToDOT converts construction steps to Graphviz DOT format.
// Inputs that name no step are skipped.
func ToDOT(steps []draft.Step, opts Options) string {
	known := make(map[string]bool, len(steps))
	for _, s := range steps {
		known[s.ID] = true
	}

	var buf bytes.Buffer
	buf.WriteString("digraph construction {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"Helvetica\", fontsize=14, margin=\"0.15,0.06\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.2;\n")
	buf.WriteString("\n")

	for _, s := range steps {
		attrs := fmtAttrs(s, fmtLabel(s, opts.Detailed))
		fmt.Fprintf(&buf, "  %q [%s];\n", s.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, s := range steps {
		for _, in := range s.Inputs {
			if known[in] {
				fmt.Fprintf(&buf, "  %q -> %q;\n", in, s.ID)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(s draft.Step, detailed bool) string {
	if !detailed {
		return s.Label
	}
	parts := []string{s.Label}
	if s.Formula != "" {
		parts = append(parts, s.Formula)
	}
	if s.Value != "" {
		parts = append(parts, "= "+s.Value)
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(s draft.Step, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch s.Kind {
	case draft.StepMeasurement:
		attrs = append(attrs, "shape=ellipse", "style=filled", "fillcolor=\"#e0f2fe\"")
	case draft.StepQuantity:
		attrs = append(attrs, "shape=box", "style=\"rounded,filled\"", "fillcolor=white")
	case draft.StepPoint:
		attrs = append(attrs, "shape=box", "style=filled", "fillcolor=\"#fde68a\"")
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

// normalizeViewBox replaces Graphviz's point-sized root element with one
// whose viewBox starts at the origin.
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

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion at the given zoom.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
