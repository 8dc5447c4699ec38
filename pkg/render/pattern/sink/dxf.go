package sink

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/dressform/pkg/render/pattern"
)

// dxfColors maps layer names to AutoCAD colour indices.
var dxfColors = map[string]int{
	pattern.LayerGrid:         8,
	pattern.LayerOutline:      7,
	pattern.LayerDarts:        1,
	pattern.LayerMarks:        5,
	pattern.LayerLabels:       7,
	pattern.LayerRegistration: 6,
}

// RenderDXF writes d as an AutoCAD R12 ASCII DXF in centimetres. The y axis
// is flipped so the pattern is upright in CAD viewers.
func RenderDXF(d pattern.Drawing) []byte {
	var w dxfWriter

	w.section("HEADER")
	w.pair(9, "$ACADVER")
	w.pair(1, "AC1009")
	w.pair(9, "$INSUNITS")
	w.pair(70, "5")
	if !d.Bounds.Empty() {
		w.pair(9, "$EXTMIN")
		w.point(10, d.Bounds.Min.X, -d.Bounds.Max.Y)
		w.pair(9, "$EXTMAX")
		w.point(10, d.Bounds.Max.X, -d.Bounds.Min.Y)
	}
	w.endSection()

	w.section("TABLES")
	w.table("LTYPE", 2)
	w.ltype("CONTINUOUS", "Solid line")
	w.ltype("DASHED", "Dashed __ __ __", 0.6, -0.3)
	w.endTable()
	w.table("LAYER", len(d.Layers))
	for _, l := range d.Layers {
		w.pair(0, "LAYER")
		w.pair(2, layerName(l.Name))
		w.pair(70, "0")
		w.pair(62, fmt.Sprint(layerColor(l.Name)))
		w.pair(6, "CONTINUOUS")
	}
	w.endTable()
	w.endSection()

	w.section("ENTITIES")
	for _, l := range d.Layers {
		name := layerName(l.Name)
		for _, p := range l.Paths {
			if len(p.Points) < 2 {
				continue
			}
			w.pair(0, "POLYLINE")
			w.pair(8, name)
			if p.Dashed {
				w.pair(6, "DASHED")
			}
			w.pair(66, "1")
			w.point(10, 0, 0)
			flags := 0
			if p.Closed {
				flags = 1
			}
			w.pair(70, fmt.Sprint(flags))
			for _, pt := range p.Points {
				w.pair(0, "VERTEX")
				w.pair(8, name)
				w.point(10, pt.X, -pt.Y)
			}
			w.pair(0, "SEQEND")
			w.pair(8, name)
		}
		for _, lb := range l.Labels {
			w.pair(0, "TEXT")
			w.pair(8, name)
			w.point(10, lb.At.X, -lb.At.Y)
			w.pair(40, fmt.Sprintf("%.3f", lb.Size))
			w.pair(1, lb.Text)
			w.pair(72, "1")
			w.point(11, lb.At.X, -lb.At.Y)
		}
	}
	w.endSection()
	w.pair(0, "EOF")
	return w.buf.Bytes()
}

func layerName(name string) string { return strings.ToUpper(name) }

func layerColor(name string) int {
	if c, ok := dxfColors[name]; ok {
		return c
	}
	return 7
}

type dxfWriter struct {
	buf bytes.Buffer
}

func (w *dxfWriter) pair(code int, value string) {
	fmt.Fprintf(&w.buf, "%3d\n%s\n", code, value)
}

// point writes an X/Y/Z triple starting at group code.
func (w *dxfWriter) point(code int, x, y float64) {
	w.pair(code, fmt.Sprintf("%.4f", x))
	w.pair(code+10, fmt.Sprintf("%.4f", y))
	w.pair(code+20, "0.0")
}

func (w *dxfWriter) section(name string) {
	w.pair(0, "SECTION")
	w.pair(2, name)
}

func (w *dxfWriter) endSection() { w.pair(0, "ENDSEC") }

func (w *dxfWriter) table(name string, count int) {
	w.pair(0, "TABLE")
	w.pair(2, name)
	w.pair(70, fmt.Sprint(count))
}

func (w *dxfWriter) endTable() { w.pair(0, "ENDTAB") }

func (w *dxfWriter) ltype(name, desc string, dashes ...float64) {
	w.pair(0, "LTYPE")
	w.pair(2, name)
	w.pair(70, "0")
	w.pair(3, desc)
	w.pair(72, "65")
	w.pair(73, fmt.Sprint(len(dashes)))
	total := 0.0
	for _, p := range dashes {
		if p < 0 {
			total -= p
		} else {
			total += p
		}
	}
	w.pair(40, fmt.Sprintf("%.3f", total))
	for _, p := range dashes {
		w.pair(49, fmt.Sprintf("%.3f", p))
	}
}
