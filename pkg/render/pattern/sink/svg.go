package sink

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/dressform/pkg/geom"
	"github.com/matzehuels/dressform/pkg/render/pattern"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style    Style
	scale    float64
	margin   float64
	viewport *geom.Rect
	physical bool
	title    string
	hidden   map[string]bool
	overlays []pattern.Layer
}

// WithStyle sets the visual style (default Technical).
func WithStyle(s Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithScale sets the output size in pixels per centimetre (default 10).
func WithScale(pxPerCM float64) SVGOption { return func(r *svgRenderer) { r.scale = pxPerCM } }

// WithMargin sets the margin around the drawing in centimetres (default 3).
func WithMargin(cm float64) SVGOption { return func(r *svgRenderer) { r.margin = cm } }

// WithViewport crops output to window, in drawing coordinates. The margin is
// ignored.
func WithViewport(window geom.Rect) SVGOption {
	return func(r *svgRenderer) { r.viewport = &window }
}

// WithPhysicalSize emits width and height in millimetres for 1:1 printing.
func WithPhysicalSize() SVGOption { return func(r *svgRenderer) { r.physical = true } }

// WithTitle sets the document title.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// WithoutLayers skips the named layers.
func WithoutLayers(names ...string) SVGOption {
	return func(r *svgRenderer) {
		for _, n := range names {
			r.hidden[n] = true
		}
	}
}

// WithOverlay draws an extra layer on top of the drawing.
func WithOverlay(l pattern.Layer) SVGOption {
	return func(r *svgRenderer) { r.overlays = append(r.overlays, l) }
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: Technical{}, scale: 10, margin: 3, hidden: map[string]bool{}}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG renders d as a standalone SVG document. The user unit is the
// centimetre.
func RenderSVG(d pattern.Drawing, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	view := d.Bounds.Inset(r.margin)
	if r.viewport != nil {
		view = *r.viewport
	}
	if view.Empty() {
		view = geom.NewRect(0, 0, 1, 1)
	}

	var buf bytes.Buffer
	w, h := view.Width(), view.Height()
	if r.physical {
		fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.3f %.3f %.3f %.3f" width="%.1fmm" height="%.1fmm">`+"\n",
			view.Min.X, view.Min.Y, w, h, w*10, h*10)
	} else {
		fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.3f %.3f %.3f %.3f" width="%.0f" height="%.0f">`+"\n",
			view.Min.X, view.Min.Y, w, h, w*r.scale, h*r.scale)
	}
	title := r.title
	if title == "" {
		title = d.Name
	}
	fmt.Fprintf(&buf, "  <title>%s</title>\n", EscapeXML(title))
	fmt.Fprintf(&buf, `  <rect x="%.3f" y="%.3f" width="%.3f" height="%.3f" fill="%s"/>`+"\n",
		view.Min.X, view.Min.Y, w, h, r.style.Background())

	for _, l := range d.Layers {
		if r.hidden[l.Name] {
			continue
		}
		renderLayer(&buf, r.style, l)
	}
	for _, l := range r.overlays {
		renderLayer(&buf, r.style, l)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderLayer(buf *bytes.Buffer, style Style, l pattern.Layer) {
	s := style.Stroke(l.Name)
	fmt.Fprintf(buf, `  <g id="layer-%s" fill="none" stroke="%s" stroke-width="%.2f" stroke-linejoin="round">`+"\n",
		EscapeXML(l.Name), s.Color, s.Width)
	for _, p := range l.Paths {
		if len(p.Points) < 2 {
			continue
		}
		fmt.Fprintf(buf, `    <path id="%s-%s" d="%s" vector-effect="non-scaling-stroke"%s/>`+"\n",
			EscapeXML(l.Name), EscapeXML(p.Name), pathData(p), dashAttr(p, s))
	}
	for _, lb := range l.Labels {
		fmt.Fprintf(buf, `    <text x="%.3f" y="%.3f" font-family="Helvetica, Arial, sans-serif" font-size="%.2f" text-anchor="middle" fill="%s" stroke="none">%s</text>`+"\n",
			lb.At.X, lb.At.Y, lb.Size, style.TextColor(), EscapeXML(lb.Text))
	}
	buf.WriteString("  </g>\n")
}

func pathData(p pattern.Path) string {
	var sb strings.Builder
	for i, pt := range p.Points {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&sb, "%s%.3f %.3f ", cmd, pt.X, pt.Y)
	}
	if p.Closed {
		sb.WriteString("Z")
	}
	return strings.TrimSpace(sb.String())
}

func dashAttr(p pattern.Path, s Stroke) string {
	if !p.Dashed || len(s.Dash) == 0 {
		return ""
	}
	parts := make([]string, len(s.Dash))
	for i, d := range s.Dash {
		parts[i] = fmt.Sprintf("%g", d)
	}
	return fmt.Sprintf(` stroke-dasharray="%s"`, strings.Join(parts, " "))
}
