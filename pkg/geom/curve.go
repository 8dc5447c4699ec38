package geom

import "math"

// Kind identifies the shape of a Curve.
type Kind string

const (
	KindLine      Kind = "line"
	KindQuadratic Kind = "quadratic"
	KindCubic     Kind = "cubic"
	KindPolyline  Kind = "polyline"
)

// DefaultSegments is the flattening resolution used by renderers and for
// curve length measurement.
const DefaultSegments = 48

// Curve is one named piece of an outline. Points holds the control polygon:
// 2 points for a line, 3 for a quadratic, 4 for a cubic and any number ≥ 2
// for a polyline.
type Curve struct {
	Name   string  `json:"name"`
	Kind   Kind    `json:"kind"`
	Points []Point `json:"points"`
}

// Line returns a straight segment from a to b.
func Line(name string, a, b Point) Curve {
	return Curve{Name: name, Kind: KindLine, Points: []Point{a, b}}
}

// Quad returns a quadratic Bézier from a to b with control c.
func Quad(name string, a, c, b Point) Curve {
	return Curve{Name: name, Kind: KindQuadratic, Points: []Point{a, c, b}}
}

// Cubic returns a cubic Bézier from a to b with controls c1 and c2.
func Cubic(name string, a, c1, c2, b Point) Curve {
	return Curve{Name: name, Kind: KindCubic, Points: []Point{a, c1, c2, b}}
}

// Polyline returns a sampled curve through pts.
func Polyline(name string, pts []Point) Curve {
	return Curve{Name: name, Kind: KindPolyline, Points: append([]Point(nil), pts...)}
}

// Start returns the first point of the curve.
func (c Curve) Start() Point { return c.Points[0] }

// End returns the last point of the curve.
func (c Curve) End() Point { return c.Points[len(c.Points)-1] }

// At evaluates the curve at parameter t in [0,1]. Polylines are
// parameterised uniformly per segment.
func (c Curve) At(t float64) Point {
	t = math.Max(0, math.Min(1, t))
	p := c.Points
	switch c.Kind {
	case KindQuadratic:
		u := 1 - t
		return p[0].Scale(u * u).Add(p[1].Scale(2 * u * t)).Add(p[2].Scale(t * t))
	case KindCubic:
		u := 1 - t
		return p[0].Scale(u * u * u).
			Add(p[1].Scale(3 * u * u * t)).
			Add(p[2].Scale(3 * u * t * t)).
			Add(p[3].Scale(t * t * t))
	case KindPolyline:
		n := len(p) - 1
		if n <= 0 {
			return p[0]
		}
		f := t * float64(n)
		i := int(f)
		if i >= n {
			return p[n]
		}
		return p[i].Lerp(p[i+1], f-float64(i))
	default:
		return p[0].Lerp(p[len(p)-1], t)
	}
}

// Flatten approximates the curve with straight segments. Lines and
// polylines return their own points; Béziers are sampled at n+1 points.
func (c Curve) Flatten(n int) []Point {
	switch c.Kind {
	case KindQuadratic, KindCubic:
		if n < 1 {
			n = DefaultSegments
		}
		out := make([]Point, n+1)
		for i := 0; i <= n; i++ {
			out[i] = c.At(float64(i) / float64(n))
		}
		return out
	default:
		return append([]Point(nil), c.Points...)
	}
}

// Length returns the arc length of the curve measured on its flattening.
func (c Curve) Length() float64 {
	return PathLength(c.Flatten(DefaultSegments))
}

// Bounds returns the bounding box of the flattened curve.
func (c Curve) Bounds() Rect {
	return RectOf(c.Flatten(DefaultSegments)...)
}

// Translate returns a copy of c moved by d.
func (c Curve) Translate(d Point) Curve {
	pts := make([]Point, len(c.Points))
	for i, p := range c.Points {
		pts[i] = p.Add(d)
	}
	c.Points = pts
	return c
}

// PathLength sums the distances between consecutive points.
func PathLength(pts []Point) float64 {
	var l float64
	for i := 1; i < len(pts); i++ {
		l += pts[i-1].Dist(pts[i])
	}
	return l
}
