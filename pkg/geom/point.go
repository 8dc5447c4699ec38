package geom

import "math"

// Point is a 2D coordinate in centimetres.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point        { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point        { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Scale(f float64) Point    { return Point{p.X * f, p.Y * f} }
func (p Point) Dist(q Point) float64     { return math.Hypot(q.X-p.X, q.Y-p.Y) }
func (p Point) Lerp(q Point, t float64) Point {
	return Point{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t}
}

// Polar returns the point at distance r from p in direction deg, measured
// from the positive x axis toward positive y (clockwise on screen).
func (p Point) Polar(r, deg float64) Point {
	rad := deg * math.Pi / 180
	return Point{p.X + r*math.Cos(rad), p.Y + r*math.Sin(rad)}
}

// Near reports whether p and q are within eps of each other.
func (p Point) Near(q Point, eps float64) bool { return p.Dist(q) <= eps }

// Rect is an axis-aligned bounding box. The zero Rect is empty.
type Rect struct {
	Min, Max Point
	valid    bool
}

// RectOf returns the bounding box of pts.
func RectOf(pts ...Point) Rect {
	var r Rect
	for _, p := range pts {
		r = r.Extend(p)
	}
	return r
}

// Extend returns r grown to include p.
func (r Rect) Extend(p Point) Rect {
	if !r.valid {
		return Rect{Min: p, Max: p, valid: true}
	}
	r.Min.X = math.Min(r.Min.X, p.X)
	r.Min.Y = math.Min(r.Min.Y, p.Y)
	r.Max.X = math.Max(r.Max.X, p.X)
	r.Max.Y = math.Max(r.Max.Y, p.Y)
	return r
}

// Union returns the smallest Rect containing r and s.
func (r Rect) Union(s Rect) Rect {
	if !s.valid {
		return r
	}
	return r.Extend(s.Min).Extend(s.Max)
}

// Inset returns r expanded by d on every side (shrunk when d is negative).
func (r Rect) Inset(d float64) Rect {
	if !r.valid {
		return r
	}
	r.Min = r.Min.Sub(Pt(d, d))
	r.Max = r.Max.Add(Pt(d, d))
	return r
}

func (r Rect) Empty() bool      { return !r.valid }
func (r Rect) Width() float64   { return r.Max.X - r.Min.X }
func (r Rect) Height() float64  { return r.Max.Y - r.Min.Y }
func (r Rect) Center() Point    { return r.Min.Lerp(r.Max, 0.5) }
func (r Rect) Contains(p Point) bool {
	return r.valid && p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Intersects reports whether r and s overlap (touching edges count).
func (r Rect) Intersects(s Rect) bool {
	return r.valid && s.valid &&
		r.Min.X <= s.Max.X && s.Min.X <= r.Max.X &&
		r.Min.Y <= s.Max.Y && s.Min.Y <= r.Max.Y
}

// NewRect builds a Rect from an origin and size.
func NewRect(x, y, w, h float64) Rect {
	return RectOf(Pt(x, y), Pt(x+w, y+h))
}
