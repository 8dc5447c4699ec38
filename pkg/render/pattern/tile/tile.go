package tile

import (
	"fmt"
	"math"

	"github.com/matzehuels/dressform/pkg/geom"
	"github.com/matzehuels/dressform/pkg/render/pattern"
	"github.com/matzehuels/dressform/pkg/render/pattern/sink"
)

// DefaultOverlap is the overlap between neighbouring pages in centimetres.
const DefaultOverlap = 1.5

const (
	markSize   = 0.5
	testSquare = 5.0
)

// Page is one sheet of a tiled drawing. Window is the printable area in
// drawing coordinates. Row and Col start at 1.
type Page struct {
	Row    int       `json:"row"`
	Col    int       `json:"col"`
	Window geom.Rect `json:"-"`
}

// Label returns the page label, e.g. "R1C2".
func (p Page) Label() string { return fmt.Sprintf("R%dC%d", p.Row, p.Col) }

// Paginate covers bounds with page windows of paper's printable size,
// neighbours overlapping by overlap. Pages are returned row by row. Empty
// bounds yield no pages.
func Paginate(bounds geom.Rect, paper Paper, overlap float64) []Page {
	if bounds.Empty() {
		return nil
	}
	w, h := paper.Printable()
	if overlap < 0 || overlap >= math.Min(w, h) {
		overlap = 0
	}
	cols := count(bounds.Width(), w, overlap)
	rows := count(bounds.Height(), h, overlap)

	pages := make([]Page, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			x := bounds.Min.X + float64(c)*(w-overlap)
			y := bounds.Min.Y + float64(r)*(h-overlap)
			pages = append(pages, Page{Row: r + 1, Col: c + 1, Window: geom.NewRect(x, y, w, h)})
		}
	}
	return pages
}

// count is the number of windows of size w with the given overlap needed to
// cover length.
func count(length, w, overlap float64) int {
	if length <= w {
		return 1
	}
	return 1 + int(math.Ceil((length-w)/(w-overlap)-1e-9))
}

// RenderPages renders each page as a full-size SVG sheet of paper. Page R1C1
// carries the test square. Extra options are applied after the page defaults.
func RenderPages(d pattern.Drawing, paper Paper, pages []Page, opts ...sink.SVGOption) [][]byte {
	out := make([][]byte, 0, len(pages))
	for _, p := range pages {
		sheet := p.Window.Inset(paper.Margin)
		o := []sink.SVGOption{
			sink.WithStyle(sink.Print{}),
			sink.WithViewport(sheet),
			sink.WithPhysicalSize(),
			sink.WithTitle(fmt.Sprintf("%s %s", d.Name, p.Label())),
			sink.WithOverlay(registration(p, p.Row == 1 && p.Col == 1)),
		}
		out = append(out, sink.RenderSVG(d, append(o, opts...)...))
	}
	return out
}

// registration draws corner crosses and the page label, plus a test square
// when calibrate is set.
func registration(p Page, calibrate bool) pattern.Layer {
	win := p.Window
	l := pattern.Layer{Name: pattern.LayerRegistration}
	corners := []geom.Point{
		win.Min,
		geom.Pt(win.Max.X, win.Min.Y),
		win.Max,
		geom.Pt(win.Min.X, win.Max.Y),
	}
	for i, c := range corners {
		l.Paths = append(l.Paths,
			pattern.Path{Name: fmt.Sprintf("corner-%d-h", i), Points: []geom.Point{c.Add(geom.Pt(-markSize, 0)), c.Add(geom.Pt(markSize, 0))}},
			pattern.Path{Name: fmt.Sprintf("corner-%d-v", i), Points: []geom.Point{c.Add(geom.Pt(0, -markSize)), c.Add(geom.Pt(0, markSize))}},
		)
	}
	l.Labels = append(l.Labels, pattern.Label{
		Text: p.Label(),
		At:   win.Min.Add(geom.Pt(1.5, 1)),
		Size: 0.6,
	})
	if calibrate {
		o := win.Min.Add(geom.Pt(1, 2))
		l.Paths = append(l.Paths, pattern.Path{
			Name: "test-square",
			Points: []geom.Point{
				o,
				o.Add(geom.Pt(testSquare, 0)),
				o.Add(geom.Pt(testSquare, testSquare)),
				o.Add(geom.Pt(0, testSquare)),
			},
			Closed: true,
		})
		l.Labels = append(l.Labels, pattern.Label{
			Text: "5 cm",
			At:   o.Add(geom.Pt(testSquare/2, testSquare/2)),
			Size: 0.5,
		})
	}
	return l
}
