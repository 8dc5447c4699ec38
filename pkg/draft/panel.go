package draft

import (
	"sort"

	"github.com/matzehuels/dressform/pkg/geom"
)

// Dart is a resolved dart shape. Wedge darts list leg, tip, leg; diamond
// darts list top tip, left leg, bottom tip, right leg and are Closed.
type Dart struct {
	Name   string       `json:"name"`
	Intake float64      `json:"intake"`
	Points []geom.Point `json:"points"`
	Closed bool         `json:"closed,omitempty"`
}

// Panel is one bodice half: named construction points, a closed outline of
// named curves and the darts sewn into it.
type Panel struct {
	Name    string                `json:"name"`
	Points  map[string]geom.Point `json:"points"`
	Outline []geom.Curve          `json:"outline"`
	Darts   []Dart                `json:"darts,omitempty"`
}

// Point returns the named point and whether it exists.
func (p Panel) Point(name string) (geom.Point, bool) {
	pt, ok := p.Points[name]
	return pt, ok
}

// PointNames returns the point names in sorted order.
func (p Panel) PointNames() []string {
	names := make([]string, 0, len(p.Points))
	for n := range p.Points {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Curve returns the named outline curve.
func (p Panel) Curve(name string) (geom.Curve, bool) {
	for _, c := range p.Outline {
		if c.Name == name {
			return c, true
		}
	}
	return geom.Curve{}, false
}

// Bounds returns the bounding box of the outline.
func (p Panel) Bounds() geom.Rect {
	var r geom.Rect
	for _, c := range p.Outline {
		r = r.Union(c.Bounds())
	}
	return r
}

// IsClosed reports whether every curve starts where the previous one ends
// and the last curve returns to the first start.
func (p Panel) IsClosed(eps float64) bool {
	n := len(p.Outline)
	if n == 0 {
		return false
	}
	for i, c := range p.Outline {
		next := p.Outline[(i+1)%n]
		if !c.End().Near(next.Start(), eps) {
			return false
		}
	}
	return true
}

// Flatten returns the outline as one polygon without repeated joints.
func (p Panel) Flatten(segments int) []geom.Point {
	var out []geom.Point
	for i, c := range p.Outline {
		pts := c.Flatten(segments)
		if i > 0 {
			pts = pts[1:]
		}
		out = append(out, pts...)
	}
	return out
}
