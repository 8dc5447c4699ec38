package pattern

import (
	"fmt"
	"strings"

	"github.com/matzehuels/dressform/pkg/draft"
	"github.com/matzehuels/dressform/pkg/geom"
)

// Layer names.
const (
	LayerGrid    = "grid"
	LayerOutline = "outline"
	LayerDarts   = "darts"
	LayerMarks   = "marks"
	LayerLabels  = "labels"

	// LayerRegistration holds page registration marks added by tiling.
	LayerRegistration = "registration"
)

// LayerOrder is the paint order of the standard layers.
var LayerOrder = []string{LayerGrid, LayerOutline, LayerDarts, LayerMarks, LayerLabels}

// Path is a flattened polyline.
type Path struct {
	Name   string       `json:"name"`
	Points []geom.Point `json:"points"`
	Closed bool         `json:"closed,omitempty"`
	Dashed bool         `json:"dashed,omitempty"`
}

// Label is a piece of text anchored at a point. Size is the cap height in
// centimetres.
type Label struct {
	Text string     `json:"text"`
	At   geom.Point `json:"at"`
	Size float64    `json:"size"`
}

// Layer groups paths and labels that share a style.
type Layer struct {
	Name   string  `json:"name"`
	Paths  []Path  `json:"paths,omitempty"`
	Labels []Label `json:"labels,omitempty"`
}

// Drawing is one pattern piece ready for a sink.
type Drawing struct {
	Name     string          `json:"name"`
	Bounds   geom.Rect       `json:"-"`
	Layers   []Layer         `json:"layers"`
	Warnings []draft.Warning `json:"warnings,omitempty"`
}

// Layer returns the named layer, or nil.
func (d *Drawing) Layer(name string) *Layer {
	for i := range d.Layers {
		if d.Layers[i].Name == name {
			return &d.Layers[i]
		}
	}
	return nil
}

// Options controls what FromBodice and FromSleeve emit.
type Options struct {
	// Grid draws the construction grid and level letters.
	Grid bool
	// Marks draws a cross at every named construction point.
	Marks bool
	// Labels draws piece names.
	Labels bool
	// Segments is the flattening resolution for Bézier curves.
	Segments int
	// MarkSize is the half-length of a point cross, in centimetres.
	MarkSize float64
}

// DefaultOptions enables every layer.
func DefaultOptions() Options {
	return Options{Grid: true, Marks: true, Labels: true, Segments: geom.DefaultSegments, MarkSize: 0.4}
}

// OutlineOnly draws only outlines and darts, as used for cutting layouts
// and DXF exchange.
func OutlineOnly() Options {
	return Options{Segments: geom.DefaultSegments}
}

func (o Options) segments() int {
	if o.Segments <= 0 {
		return geom.DefaultSegments
	}
	return o.Segments
}

// levelLetters are the traditional grid letters of each level.
var levelLetters = []string{"A", "G", "T", "B", "N"}

// FromBodice builds the bodice drawing with both panels on one grid.
func FromBodice(c draft.BodiceContour, o Options) Drawing {
	d := Drawing{Name: "bodice", Warnings: c.Warnings}
	outline := Layer{Name: LayerOutline}
	darts := Layer{Name: LayerDarts}
	marks := Layer{Name: LayerMarks}
	labels := Layer{Name: LayerLabels}

	for _, p := range []draft.Panel{c.Back, c.Front} {
		outline.Paths = append(outline.Paths, Path{Name: p.Name, Points: p.Flatten(o.segments()), Closed: true})
		darts.Paths = append(darts.Paths, dartPaths(p.Darts)...)
		if o.Marks {
			marks.Paths = append(marks.Paths, pointMarks(p, o.MarkSize)...)
		}
		if o.Labels {
			b := p.Bounds()
			labels.Labels = append(labels.Labels, Label{
				Text: strings.ToUpper(p.Name),
				At:   geom.Pt(b.Center().X, c.Grid.Hip+(c.Grid.Hem-c.Grid.Hip)/2),
				Size: 1.5,
			})
		}
	}
	if o.Marks {
		marks.Paths = append(marks.Paths, cross("bust-apex", c.BustApex, o.MarkSize*1.5))
	}

	var layers []Layer
	if o.Grid {
		layers = append(layers, bodiceGrid(c))
	}
	layers = append(layers, outline, darts)
	if o.Marks {
		layers = append(layers, marks)
	}
	if o.Labels {
		layers = append(layers, labels)
	}
	d.Layers = layers
	d.Bounds = bounds(d.Layers)
	return d
}

// FromSleeve builds the sleeve drawing centred on the sleeve axis.
func FromSleeve(s draft.SleeveGeometry, o Options) Drawing {
	d := Drawing{Name: "sleeve", Warnings: s.Warnings}
	p := s.Panel()

	var layers []Layer
	if o.Grid {
		hw := s.CapWidth / 2
		grid := Layer{Name: LayerGrid}
		grid.Paths = append(grid.Paths,
			Path{Name: "underarm-line", Points: []geom.Point{geom.Pt(-hw, 0), geom.Pt(hw, 0)}, Dashed: true},
			Path{Name: "sleeve-axis", Points: []geom.Point{geom.Pt(0, -s.CapHeight), geom.Pt(0, s.Length-s.CapHeight)}, Dashed: true},
		)
		layers = append(layers, grid)
	}
	layers = append(layers, Layer{
		Name:  LayerOutline,
		Paths: []Path{{Name: p.Name, Points: p.Flatten(o.segments()), Closed: true}},
	})
	if o.Marks {
		layers = append(layers, Layer{Name: LayerMarks, Paths: pointMarks(p, o.MarkSize)})
	}
	if o.Labels {
		layers = append(layers, Layer{Name: LayerLabels, Labels: []Label{
			{Text: "SLEEVE", At: geom.Pt(0, (s.Length-s.CapHeight)/2), Size: 1.5},
			{Text: "back", At: geom.Pt(-s.CapWidth/4, 3), Size: 0.8},
			{Text: "front", At: geom.Pt(s.CapWidth/4, 3), Size: 0.8},
		}})
	}
	d.Layers = layers
	d.Bounds = bounds(d.Layers)
	return d
}

func bodiceGrid(c draft.BodiceContour) Layer {
	g := c.Grid
	span := g.Span()
	top := geom.Pt(0, g.Neck)
	if fn, ok := c.Front.Point(draft.PtFrontNeck); ok && fn.Y < top.Y {
		top.Y = fn.Y
	}

	l := Layer{Name: LayerGrid}
	for i, y := range g.Levels() {
		l.Paths = append(l.Paths, Path{
			Name:   fmt.Sprintf("level-%s", levelLetters[i]),
			Points: []geom.Point{geom.Pt(0, y), geom.Pt(span, y)},
			Dashed: true,
		})
		l.Labels = append(l.Labels, Label{Text: levelLetters[i], At: geom.Pt(-1.5, y), Size: 0.8})
	}
	for _, v := range []struct {
		name string
		x    float64
	}{
		{"back-width", g.Back},
		{"side", g.Back + g.Armhole/2},
		{"front-width", g.Back + g.Armhole},
	} {
		l.Paths = append(l.Paths, Path{
			Name:   v.name,
			Points: []geom.Point{geom.Pt(v.x, top.Y), geom.Pt(v.x, g.Hip)},
			Dashed: true,
		})
	}
	return l
}

func dartPaths(ds []draft.Dart) []Path {
	out := make([]Path, 0, len(ds))
	for _, dt := range ds {
		out = append(out, Path{Name: dt.Name + "-dart", Points: dt.Points, Closed: dt.Closed})
	}
	return out
}

func pointMarks(p draft.Panel, size float64) []Path {
	var out []Path
	for _, name := range p.PointNames() {
		out = append(out, cross(name, p.Points[name], size))
	}
	return out
}

// cross draws an X as one open polyline through the centre.
func cross(name string, c geom.Point, size float64) Path {
	return Path{Name: name, Points: []geom.Point{
		c.Add(geom.Pt(-size, -size)),
		c.Add(geom.Pt(size, size)),
		c,
		c.Add(geom.Pt(-size, size)),
		c.Add(geom.Pt(size, -size)),
	}}
}

func bounds(layers []Layer) geom.Rect {
	var r geom.Rect
	for _, l := range layers {
		for _, p := range l.Paths {
			r = r.Union(geom.RectOf(p.Points...))
		}
		for _, lb := range l.Labels {
			r = r.Extend(lb.At)
		}
	}
	return r
}
