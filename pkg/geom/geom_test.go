package geom

import (
	"math"
	"testing"
)

func TestCurveEndpoints(t *testing.T) {
	a, b := Pt(0, 0), Pt(10, 5)
	tests := []struct {
		name  string
		curve Curve
	}{
		{"line", Line("l", a, b)},
		{"quad", Quad("q", a, Pt(5, -3), b)},
		{"cubic", Cubic("c", a, Pt(2, 4), Pt(8, 4), b)},
		{"polyline", Polyline("p", []Point{a, Pt(3, 1), b})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.curve.At(0); !got.Near(a, 1e-9) {
				t.Errorf("At(0) = %v, want %v", got, a)
			}
			if got := tt.curve.At(1); !got.Near(b, 1e-9) {
				t.Errorf("At(1) = %v, want %v", got, b)
			}
			pts := tt.curve.Flatten(16)
			if !pts[0].Near(a, 1e-9) || !pts[len(pts)-1].Near(b, 1e-9) {
				t.Errorf("Flatten endpoints = %v..%v", pts[0], pts[len(pts)-1])
			}
		})
	}
}

func TestLength(t *testing.T) {
	if got := Line("l", Pt(0, 0), Pt(3, 4)).Length(); math.Abs(got-5) > 1e-9 {
		t.Errorf("line length = %v, want 5", got)
	}
	// A straight cubic has the length of its chord.
	c := Cubic("c", Pt(0, 0), Pt(1, 0), Pt(2, 0), Pt(3, 0))
	if got := c.Length(); math.Abs(got-3) > 1e-6 {
		t.Errorf("straight cubic length = %v, want 3", got)
	}
	// A bulging curve is longer than its chord.
	q := Quad("q", Pt(0, 0), Pt(5, 5), Pt(10, 0))
	if got := q.Length(); got <= 10 {
		t.Errorf("quad length = %v, want > 10", got)
	}
}

func TestRect(t *testing.T) {
	var r Rect
	if !r.Empty() {
		t.Fatal("zero Rect should be empty")
	}
	r = RectOf(Pt(1, 2), Pt(-3, 5), Pt(4, -1))
	if r.Min != Pt(-3, -1) || r.Max != Pt(4, 5) {
		t.Errorf("RectOf = %+v", r)
	}
	if r.Width() != 7 || r.Height() != 6 {
		t.Errorf("size = %vx%v, want 7x6", r.Width(), r.Height())
	}
	if !r.Contains(Pt(0, 0)) || r.Contains(Pt(10, 0)) {
		t.Error("Contains mismatch")
	}
	s := NewRect(4, 5, 1, 1)
	if !r.Intersects(s) {
		t.Error("touching rects should intersect")
	}
	if r.Intersects(NewRect(10, 10, 1, 1)) {
		t.Error("disjoint rects should not intersect")
	}
	g := r.Inset(1)
	if g.Min != Pt(-4, -2) || g.Max != Pt(5, 6) {
		t.Errorf("Inset(1) = %+v", g)
	}
}

func TestPolar(t *testing.T) {
	p := Pt(0, 0).Polar(2, 90)
	if !p.Near(Pt(0, 2), 1e-9) {
		t.Errorf("Polar(2, 90) = %v, want (0,2)", p)
	}
}
