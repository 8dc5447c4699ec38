package sink

import (
	"bytes"
	"fmt"
	"log/slog"
	"math"

	"github.com/gogpu/gg"

	"github.com/matzehuels/dressform/pkg/render/pattern"
)

// maxPNGSide bounds the raster size in pixels.
const maxPNGSide = 12000

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	style  Style
	scale  float64
	margin float64
	hidden map[string]bool
}

// WithPNGStyle sets the visual style (default Technical).
func WithPNGStyle(s Style) PNGOption { return func(r *pngRenderer) { r.style = s } }

// WithPNGScale sets the resolution in pixels per centimetre (default 10).
func WithPNGScale(pxPerCM float64) PNGOption { return func(r *pngRenderer) { r.scale = pxPerCM } }

// WithPNGMargin sets the margin in centimetres (default 3).
func WithPNGMargin(cm float64) PNGOption { return func(r *pngRenderer) { r.margin = cm } }

// WithoutPNGLayers skips the named layers.
func WithoutPNGLayers(names ...string) PNGOption {
	return func(r *pngRenderer) {
		for _, n := range names {
			r.hidden[n] = true
		}
	}
}

// SetRasterLogger routes diagnostics of the rasteriser to l. A nil logger
// silences them.
func SetRasterLogger(l *slog.Logger) { gg.SetLogger(l) }

// RenderPNG rasterises d with gogpu/gg. Labels are not drawn.
func RenderPNG(d pattern.Drawing, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{style: Technical{}, scale: 10, margin: 3, hidden: map[string]bool{}}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		return nil, fmt.Errorf("png scale must be positive, got %v", r.scale)
	}

	view := d.Bounds.Inset(r.margin)
	if view.Empty() {
		return nil, fmt.Errorf("drawing %q is empty", d.Name)
	}
	w := int(math.Ceil(view.Width() * r.scale))
	h := int(math.Ceil(view.Height() * r.scale))
	if w > maxPNGSide || h > maxPNGSide {
		return nil, fmt.Errorf("png would be %dx%d px (max %d); lower the scale", w, h, maxPNGSide)
	}

	dc := gg.NewContext(w, h)
	defer dc.Close()
	dc.ClearWithColor(gg.Hex(r.style.Background()))

	toPx := func(x, y float64) (float64, float64) {
		return (x - view.Min.X) * r.scale, (y - view.Min.Y) * r.scale
	}
	for _, l := range d.Layers {
		if r.hidden[l.Name] || len(l.Paths) == 0 {
			continue
		}
		s := r.style.Stroke(l.Name)
		dc.SetHexColor(s.Color)
		dc.SetLineWidth(s.Width)
		for _, p := range l.Paths {
			if len(p.Points) < 2 {
				continue
			}
			if p.Dashed && len(s.Dash) > 0 {
				dc.SetDash(s.Dash...)
			} else {
				dc.ClearDash()
			}
			dc.MoveTo(toPx(p.Points[0].X, p.Points[0].Y))
			for _, pt := range p.Points[1:] {
				dc.LineTo(toPx(pt.X, pt.Y))
			}
			if p.Closed {
				dc.ClosePath()
			}
			if err := dc.Stroke(); err != nil {
				return nil, fmt.Errorf("stroke %s/%s: %w", l.Name, p.Name, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
